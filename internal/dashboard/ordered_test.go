package dashboard

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuarterStatsKeepServerOrder(t *testing.T) {
	var list QuarterStatsList
	raw := `{"Q3":{"ortalama":3},"Q1":{"ortalama":1,"minimum":0.5},"Q2":{"ortalama":2,"maksimum":null}}`
	require.NoError(t, json.Unmarshal([]byte(raw), &list))
	require.Len(t, list, 3)
	assert.Equal(t, []string{"Q3", "Q1", "Q2"}, []string{list[0].Quarter, list[1].Quarter, list[2].Quarter})
	assert.Equal(t, 0.5, *list[1].Stats.Min)
	assert.Nil(t, list[2].Stats.Max)
}

func TestKeyValuesNestOneLevel(t *testing.T) {
	var kvs KeyValues
	raw := `{
		"məqsəd": "Satışı artırmaq",
		"büdcə": 250000,
		"fazalar": {"birinci": "Q1 kampaniya", "ikinci": {"dərin": true}, "kanallar": ["filial", "onlayn"]},
		"boş": null
	}`
	require.NoError(t, json.Unmarshal([]byte(raw), &kvs))
	require.Len(t, kvs, 4)

	assert.Equal(t, "məqsəd", kvs[0].Key)
	assert.False(t, kvs[0].Nested())
	assert.Equal(t, "Satışı artırmaq", kvs[0].Value)
	assert.Equal(t, "250000", kvs[1].Value)

	require.True(t, kvs[2].Nested())
	children := kvs[2].Children
	require.Len(t, children, 3)
	assert.Equal(t, "Q1 kampaniya", children[0].Value)
	assert.False(t, children[1].Nested(), "nesting stops after one level")
	assert.Equal(t, `{"dərin":true}`, children[1].Value)
	assert.Equal(t, "filial, onlayn", children[2].Value)

	assert.Equal(t, "", kvs[3].Value)
}

func TestKeyValuesToleratesNonObject(t *testing.T) {
	var kvs KeyValues
	require.NoError(t, json.Unmarshal([]byte(`["a","b"]`), &kvs))
	require.Len(t, kvs, 1)
	assert.Equal(t, "", kvs[0].Key)
	assert.Equal(t, "a, b", kvs[0].Value)

	require.NoError(t, json.Unmarshal([]byte(`"Artım"`), &kvs))
	assert.Equal(t, "Artım", kvs[0].Value)

	require.NoError(t, json.Unmarshal([]byte(`null`), &kvs))
	assert.Empty(t, kvs)
}

func TestDisplayTextToleratesScalarTypeChanges(t *testing.T) {
	var exec ExecutiveSummary
	require.NoError(t, json.Unmarshal([]byte(`{
		"risk_qiymətləndirməsi":{"səviyyə":"Yüksək","təsvir":null},
		"əsas_təhlillər":[{"tip":"Pozitiv","başlıq":"Artım","məzmun":true,"prioritet":1}],
		"kritik_tapıntılar":["Q1 enişi",3]
	}`), &exec))
	assert.Equal(t, "1", exec.Insights[0].Priority.String())
	assert.Equal(t, "true", exec.Insights[0].Body.String())
	assert.Equal(t, "3", exec.CriticalFindings[1].String())

	var trend TrendAnalysis
	require.NoError(t, json.Unmarshal([]byte(`{"ümumi_trend":{"güclülük":{"R²":"0.82"}}}`), &trend))
	assert.Equal(t, "0.82", trend.Overall.Strength.R2.String())
}

func TestLabelAcceptsNumbersAndStrings(t *testing.T) {
	var payload struct {
		A Label `json:"a"`
		B Label `json:"b"`
		C Label `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":2024,"b":"2025-Q1","c":null}`), &payload))
	assert.Equal(t, "2024", payload.A.String())
	assert.Equal(t, "2025-Q1", payload.B.String())
	assert.Equal(t, "", payload.C.String())
}

func TestNumberListOrder(t *testing.T) {
	var list NumberList
	require.NoError(t, json.Unmarshal([]byte(`{"Q4":4.5,"Q2":2}`), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "Q4", list[0].Name)
	assert.Equal(t, 4.5, *list[0].Value)
}
