package acled

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "github.com/jarretangbazo/economics-senior-thesis/internal/errors"
)

const yearFileHeader = "event_id_cnty,event_date,event_type,admin1,admin2,location,latitude,longitude,fatalities,actor1,actor2\n"

func writeYearFile(t *testing.T, dir string, year int, rows string) {
	t.Helper()
	path := filepath.Join(dir, fmt.Sprintf("acled_nga_%d.csv", year))
	require.NoError(t, os.WriteFile(path, []byte(yearFileHeader+rows), 0644))
}

func TestLoadAll_MultipleYears(t *testing.T) {
	dir := t.TempDir()
	writeYearFile(t, dir, 2010,
		"NIG1,2010-03-15,Battles,Borno,Maiduguri,Maiduguri,11.85,13.16,4,Boko Haram,Military Forces\n"+
			"NIG2,2010-06-01,Riots,Lagos,Ikeja,Ikeja,6.60,3.35,0,Protesters,\n")
	writeYearFile(t, dir, 2011,
		"NIG3,2011-01-20,Violence against civilians,Yobe,Damaturu,Damaturu,11.74,11.96,2,Boko Haram,Civilians\n")

	loader := NewLoader(nil)
	events, report, err := loader.LoadAll(dir, 2010, 2011)
	require.NoError(t, err)

	assert.Len(t, events, 3)
	assert.Equal(t, 2, report.FilesLoaded)
	assert.Equal(t, 2, report.EventsByYear[2010])
	assert.Equal(t, 1, report.EventsByYear[2011])
	assert.Equal(t, "NIG1", events[0].EventID)
	assert.Equal(t, "Boko Haram", events[0].Actor1)
}

func TestLoadAll_MissingYearSkipped(t *testing.T) {
	dir := t.TempDir()
	writeYearFile(t, dir, 2010, "NIG1,2010-03-15,Battles,Borno,Maiduguri,Maiduguri,11.85,13.16,4,Boko Haram,\n")

	loader := NewLoader(nil)
	events, report, err := loader.LoadAll(dir, 2009, 2011)
	require.NoError(t, err)

	assert.Len(t, events, 1)
	assert.Equal(t, 1, report.FilesLoaded)
	assert.Equal(t, []string{"acled_nga_2009.csv", "acled_nga_2011.csv"}, report.MissingFiles)
}

func TestLoadAll_MissingColumnsSkipsFile(t *testing.T) {
	dir := t.TempDir()
	badHeader := "event_id_cnty,event_date,event_type\nNIG1,2010-03-15,Battles\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "acled_nga_2010.csv"), []byte(badHeader), 0644))
	writeYearFile(t, dir, 2011, "NIG2,2011-01-20,Battles,Yobe,Damaturu,Damaturu,11.74,11.96,2,Boko Haram,\n")

	loader := NewLoader(nil)
	events, report, err := loader.LoadAll(dir, 2010, 2011)
	require.NoError(t, err)

	assert.Len(t, events, 1)
	assert.Equal(t, []string{"acled_nga_2010.csv"}, report.SkippedFiles)
}

func TestLoadAll_NoUsableFilesIsFatal(t *testing.T) {
	loader := NewLoader(nil)
	_, _, err := loader.LoadAll(t.TempDir(), 2010, 2012)

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeLoad))
}

func TestLoadAll_XLSXVariant(t *testing.T) {
	dir := t.TempDir()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{
		"event_id_cnty", "event_date", "event_type", "admin1", "admin2",
		"location", "latitude", "longitude", "fatalities", "actor1", "actor2",
	}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{
		"NIG9", "2012-05-05", "Battles", "Borno", "Bama", "Bama", "11.52", "13.69", "7", "Boko Haram", "Military Forces",
	}))
	require.NoError(t, f.SaveAs(filepath.Join(dir, "acled_nga_2012.xlsx")))
	require.NoError(t, f.Close())

	loader := NewLoader(nil)
	events, report, err := loader.LoadAll(dir, 2012, 2012)
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, "NIG9", events[0].EventID)
	assert.Equal(t, "7", events[0].Fatalities)
	assert.Equal(t, 1, report.FilesLoaded)
}

func TestLoadCSV_BOMHeader(t *testing.T) {
	dir := t.TempDir()
	content := "\xef\xbb\xbf" + yearFileHeader +
		"NIG1,2010-03-15,Battles,Borno,Maiduguri,Maiduguri,11.85,13.16,4,Boko Haram,\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "acled_nga_2010.csv"), []byte(content), 0644))

	loader := NewLoader(nil)
	events, _, err := loader.LoadAll(dir, 2010, 2010)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "NIG1", events[0].EventID)
}
