package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Aguus1610/EAD-ServicesManagement/internal/model"
)

func TestCleanDuplicates_KeepsFirstPerKey(t *testing.T) {
	st := newTestStore(t)

	eqID, err := st.CreateEquipment(&model.Equipment{
		Brand: "Bomba", Model: "X1", Year: 2020, Serial: "Bomba X1",
	})
	require.NoError(t, err)

	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	first, err := st.CreateJob(&model.Job{EquipmentID: eqID, DateDone: date, Description: "original"})
	require.NoError(t, err)
	_, err = st.CreateJob(&model.Job{EquipmentID: eqID, DateDone: date, Description: "duplicado"})
	require.NoError(t, err)
	_, err = st.CreateJob(&model.Job{EquipmentID: eqID, DateDone: date, Description: "duplicado 2"})
	require.NoError(t, err)

	deleted, err := NewReconciler(st).CleanDuplicates()
	require.NoError(t, err)
	require.Equal(t, 2, deleted)

	jobs, err := st.ListJobsOrdered()
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	require.Equal(t, first, jobs[0].ID)
	require.Equal(t, "original", jobs[0].Description)
}

func TestCleanDuplicates_DistinctKeysUntouched(t *testing.T) {
	st := newTestStore(t)

	eqA, err := st.CreateEquipment(&model.Equipment{Brand: "A", Model: "1", Year: 2020, Serial: "A 1"})
	require.NoError(t, err)
	eqB, err := st.CreateEquipment(&model.Equipment{Brand: "B", Model: "2", Year: 2020, Serial: "B 2"})
	require.NoError(t, err)

	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	// 同日期不同设备、同设备不同日期都不算重复
	_, err = st.CreateJob(&model.Job{EquipmentID: eqA, DateDone: date, Description: "a"})
	require.NoError(t, err)
	_, err = st.CreateJob(&model.Job{EquipmentID: eqB, DateDone: date, Description: "b"})
	require.NoError(t, err)
	_, err = st.CreateJob(&model.Job{EquipmentID: eqA, DateDone: date.AddDate(0, 0, 1), Description: "c"})
	require.NoError(t, err)

	deleted, err := NewReconciler(st).CleanDuplicates()
	require.NoError(t, err)
	require.Equal(t, 0, deleted)

	count, err := st.CountJobs()
	require.NoError(t, err)
	require.Equal(t, 3, count)
}

func TestCleanDuplicates_EmptyDatabase(t *testing.T) {
	st := newTestStore(t)

	deleted, err := NewReconciler(st).CleanDuplicates()
	require.NoError(t, err)
	require.Equal(t, 0, deleted)
}
