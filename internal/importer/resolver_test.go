package importer

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Aguus1610/EAD-ServicesManagement/internal/model"
	"github.com/Aguus1610/EAD-ServicesManagement/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	st, err := store.New(filepath.Join(t.TempDir(), "ead_services.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func testRecord(client, equipment string) model.ImportRecord {
	return model.ImportRecord{
		ClientLabel:    client,
		EquipmentLabel: equipment,
		Date:           time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		Labor:          "Revision",
		Description:    model.BuildDescription("Revision", ""),
	}
}

func TestResolveClient_CreateThenReuse(t *testing.T) {
	st := newTestStore(t)
	resolver := NewResolver(st)

	client, created, err := resolver.ResolveClient("Acme Corp")
	require.NoError(t, err)
	require.True(t, created)
	require.NotNil(t, client)

	again, created, err := resolver.ResolveClient("Acme Corp")
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, client.ID, again.ID)
}

func TestResolveClient_BlankIsNil(t *testing.T) {
	st := newTestStore(t)
	resolver := NewResolver(st)

	client, created, err := resolver.ResolveClient("   ")
	require.NoError(t, err)
	require.False(t, created)
	require.Nil(t, client)
}

func TestResolveEquipment_CreatesWithSplitLabel(t *testing.T) {
	st := newTestStore(t)
	resolver := NewResolver(st)

	eq, outcome, err := resolver.ResolveEquipment(testRecord("Acme Corp", "Bomba X1 Turbo"))
	require.NoError(t, err)
	require.True(t, outcome.ClientCreated)
	require.True(t, outcome.EquipmentCreated)
	require.False(t, outcome.EquipmentUpdated)

	require.Equal(t, "Bomba", eq.Brand)
	require.Equal(t, "X1 Turbo", eq.Model)
	require.Equal(t, "Bomba X1 Turbo", eq.Serial)
	require.Equal(t, time.Now().Year(), eq.Year)
	require.NotNil(t, eq.ClientID)
}

func TestResolveEquipment_SingleWordLabel(t *testing.T) {
	st := newTestStore(t)
	resolver := NewResolver(st)

	eq, _, err := resolver.ResolveEquipment(testRecord("Acme Corp", "Compresor"))
	require.NoError(t, err)
	require.Equal(t, "Compresor", eq.Brand)
	require.Equal(t, "Sin especificar", eq.Model)
}

func TestResolveEquipment_ReuseIsDeterministic(t *testing.T) {
	st := newTestStore(t)
	resolver := NewResolver(st)

	first, outcome, err := resolver.ResolveEquipment(testRecord("Acme Corp", "Bomba X1"))
	require.NoError(t, err)
	require.True(t, outcome.EquipmentCreated)

	second, outcome, err := resolver.ResolveEquipment(testRecord("Acme Corp", "Bomba X1"))
	require.NoError(t, err)
	require.False(t, outcome.ClientCreated)
	require.False(t, outcome.EquipmentCreated)
	require.False(t, outcome.EquipmentUpdated)
	require.Equal(t, first.ID, second.ID)
}

func TestResolveEquipment_BackfillsClientLink(t *testing.T) {
	st := newTestStore(t)
	resolver := NewResolver(st)

	// 预置一台无客户关联的历史设备
	eqID, err := st.CreateEquipment(&model.Equipment{
		Brand: "Bomba", Model: "X1", Year: 2019, Serial: "Bomba X1", Owner: "Juan",
	})
	require.NoError(t, err)

	eq, outcome, err := resolver.ResolveEquipment(testRecord("Acme Corp", "Bomba X1"))
	require.NoError(t, err)
	require.Equal(t, eqID, eq.ID)
	require.False(t, outcome.EquipmentCreated)
	require.True(t, outcome.EquipmentUpdated)
	require.NotNil(t, eq.ClientID)

	// 已有关联时不再回填，也不覆盖
	_, outcome, err = resolver.ResolveEquipment(testRecord("Otro Cliente", "Bomba X1"))
	require.NoError(t, err)
	require.False(t, outcome.EquipmentUpdated)

	stored, err := st.GetEquipmentBySerial("Bomba X1")
	require.NoError(t, err)
	acme, err := st.GetClientByName("Acme Corp")
	require.NoError(t, err)
	require.Equal(t, acme.ID, *stored.ClientID)
	// 品牌/型号/年份保持原值
	require.Equal(t, 2019, stored.Year)
}
