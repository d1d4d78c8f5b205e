package api

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Aguus1610/EAD-ServicesManagement/internal/model"
)

// uploadSession 已解析待确认的工作簿
type uploadSession struct {
	filename  string
	records   []model.ImportRecord
	expiresAt time.Time
}

// uploadSessionStore 上传会话存储（内存态，进程重启即失效）
type uploadSessionStore struct {
	mu    sync.Mutex
	items map[string]uploadSession
}

func newUploadSessionStore() *uploadSessionStore {
	return &uploadSessionStore{
		items: make(map[string]uploadSession),
	}
}

func (s *uploadSessionStore) put(filename string, records []model.ImportRecord, ttl time.Duration) (token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())

	token = uuid.New().String()
	s.items[token] = uploadSession{
		filename:  filename,
		records:   records,
		expiresAt: time.Now().Add(ttl),
	}
	return token
}

func (s *uploadSessionStore) get(token string) (uploadSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())

	v, ok := s.items[token]
	if !ok {
		return uploadSession{}, false
	}
	if time.Now().After(v.expiresAt) {
		delete(s.items, token)
		return uploadSession{}, false
	}
	return v, true
}

func (s *uploadSessionStore) delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, token)
}

func (s *uploadSessionStore) purgeExpiredLocked(now time.Time) {
	for k, v := range s.items {
		if now.After(v.expiresAt) {
			delete(s.items, k)
		}
	}
}
