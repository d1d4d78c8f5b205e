package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Aguus1610/EAD-ServicesManagement/internal/model"
)

func TestBuildPreview(t *testing.T) {
	t.Parallel()

	records := []model.ImportRecord{
		testRecord("Acme Corp", "Bomba X1"),
		testRecord("Acme Corp", "Motor Z9"),
		testRecord("Otro Cliente", "Bomba X1"),
	}
	records[1].Date = time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	records[2].Date = time.Date(2024, 8, 20, 0, 0, 0, 0, time.UTC)

	preview := BuildPreview(records, 2)
	require.Equal(t, 3, preview.TotalRecords)
	require.Equal(t, 2, preview.ClientLabels)
	require.Equal(t, 2, preview.EquipmentLabels)
	require.Len(t, preview.Records, 2)

	require.NotNil(t, preview.MinDate)
	require.NotNil(t, preview.MaxDate)
	require.Equal(t, "2023-06-01", preview.MinDate.Format("2006-01-02"))
	require.Equal(t, "2024-08-20", preview.MaxDate.Format("2006-01-02"))
}

func TestBuildPreview_Empty(t *testing.T) {
	t.Parallel()

	preview := BuildPreview(nil, 20)
	require.Equal(t, 0, preview.TotalRecords)
	require.Empty(t, preview.Records)
	require.Nil(t, preview.MinDate)
	require.Nil(t, preview.MaxDate)
}
