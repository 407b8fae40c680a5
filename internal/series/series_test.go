package series

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"testing"

	"hashtrend/internal/aggregate"
	"hashtrend/internal/datekey"
	"hashtrend/internal/snapshot"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func mustKey(t *testing.T, ex *datekey.Extractor, name string) datekey.Key {
	t.Helper()
	k, err := ex.Extract(name)
	require.NoError(t, err)
	return k
}

func TestScenario_TwoDaysOneHashtag(t *testing.T) {
	ex := datekey.NewExtractor(datekey.GenericTriplet)
	agg := aggregate.New([]string{"#test"})
	rec := snapshot.Record{"#test": {"a": 3, "b": 2}}
	require.NoError(t, agg.Ingest(mustKey(t, ex, "01-15-24.json"), rec))
	require.NoError(t, agg.Ingest(mustKey(t, ex, "01-16-24.json"), rec))
	table := agg.Table()

	axis, err := BuildAxis(table)
	require.NoError(t, err)
	assert.Equal(t, []string{"01-15-24", "01-16-24"}, axis.Labels())

	out := Export(table, axis, []string{"#test"})
	assert.Equal(t, []int64{5, 5}, out.Series("#test"))
	assert.False(t, out.Empty())
}

func TestExport_AbsentHashtagIsAllZeros(t *testing.T) {
	ex := datekey.NewExtractor(datekey.GenericTriplet)
	agg := aggregate.New([]string{"#seen", "#ghost"})
	require.NoError(t, agg.Ingest(mustKey(t, ex, "02-01-24.json"), snapshot.Record{"#seen": {"a": 1}}))
	require.NoError(t, agg.Ingest(mustKey(t, ex, "02-02-24.json"), snapshot.Record{"#seen": {"a": 2}}))
	table := agg.Table()

	axis, err := BuildAxis(table)
	require.NoError(t, err)
	out := Export(table, axis, []string{"#seen", "#ghost"})

	assert.Equal(t, []int64{0, 0}, out.Series("#ghost"))
	assert.Equal(t, []int64{1, 2}, out.Series("#seen"))

	// Zero-fill happens at read time only.
	assert.False(t, table.Observed("#ghost"))
}

func TestExport_EmptyAxis(t *testing.T) {
	table := aggregate.New([]string{"#a", "#b"}).Table()
	axis, err := BuildAxis(table)
	require.NoError(t, err)
	assert.Empty(t, axis)

	out := Export(table, axis, []string{"#a", "#b"})
	assert.True(t, out.Empty())
	assert.Equal(t, []int64{}, out.Series("#a"))
	assert.Equal(t, []int64{}, out.Series("#b"))
}

func TestBuildAxis_Unsealed(t *testing.T) {
	_, err := BuildAxis(&aggregate.Table{})
	assert.ErrorIs(t, err, ErrUnsealed)
}

func TestExport_DuplicateHashtagsCollapsed(t *testing.T) {
	table := aggregate.New([]string{"#a"}).Table()
	out := Export(table, nil, []string{"#a", "#a"})
	assert.Equal(t, []string{"#a"}, out.Hashtags)
}

// Axis is strictly ascending and every series is aligned to it, for random inputs
// that include duplicate dates and sparse hashtags.
func TestProperties_RandomInputs(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tags := []string{"#a", "#b", "#c"}

	for iter := 0; iter < 50; iter++ {
		agg := aggregate.New(tags)
		for i := 0; i < 1+rng.Intn(20); i++ {
			d := datekey.Key{Parts: [3]int{2020 + rng.Intn(3), 1 + rng.Intn(12), 1 + rng.Intn(3)}}
			d.Text = datekeyText(d.Parts)
			rec := snapshot.Record{}
			for _, tag := range tags {
				if rng.Intn(2) == 0 {
					rec[tag] = map[string]int64{"x": int64(rng.Intn(50)), "y": int64(rng.Intn(50))}
				}
			}
			require.NoError(t, agg.Ingest(d, rec))
		}
		table := agg.Table()

		axis, err := BuildAxis(table)
		require.NoError(t, err)
		require.Equal(t, table.Len(), len(axis))
		for i := 1; i < len(axis); i++ {
			require.Equal(t, -1, axis[i-1].Compare(axis[i]), "axis not strictly ascending at %d", i)
		}

		out := Export(table, axis, tags)
		for _, tag := range tags {
			require.Len(t, out.Series(tag), len(axis))
			for i, d := range axis {
				require.Equal(t, table.CountOrZero(d, tag), out.Series(tag)[i])
			}
		}
	}
}

func datekeyText(p [3]int) string {
	b, _ := json.Marshal(p)
	return string(b)
}

func sampleTable() *Table {
	return &Table{
		Axis: Axis{
			{Text: "2020-03-01", Parts: [3]int{2020, 3, 1}},
			{Text: "2020-03-02", Parts: [3]int{2020, 3, 2}},
		},
		Hashtags: []string{"#coronavirus", "#flu"},
		Counts: map[string][]int64{
			"#coronavirus": {120, 340},
			"#flu":         {7, 0},
		},
	}
}

func TestEncode_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sampleTable(), FormatJSON))

	var got document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	want := document{
		Dates: []string{"2020-03-01", "2020-03-02"},
		Hashtags: []seriesRecord{
			{Hashtag: "#coronavirus", Counts: []int64{120, 340}},
			{Hashtag: "#flu", Counts: []int64{7, 0}},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("json document mismatch (-want +got):\n%s", diff)
	}
}

func TestEncode_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sampleTable(), FormatYAML))
	assert.Contains(t, buf.String(), "counts: [120, 340]")

	var got document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []string{"2020-03-01", "2020-03-02"}, got.Dates)
	assert.Equal(t, "#flu", got.Hashtags[1].Hashtag)
}

func TestEncode_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sampleTable(), FormatCSV))
	want := "date,#coronavirus,#flu\n2020-03-01,120,7\n2020-03-02,340,0\n"
	assert.Equal(t, want, buf.String())
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.ErrorIs(t, Encode(&bytes.Buffer{}, sampleTable(), Format("xml")), ErrUnknownFormat)
}
