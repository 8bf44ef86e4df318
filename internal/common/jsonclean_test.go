package common

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanJSONResponseFenced(t *testing.T) {
	raw := "Here is the data:\n```json\n{\"a\":1}\n```"
	cleaned := CleanJSONResponse(raw)

	var out map[string]int
	require.NoError(t, json.Unmarshal([]byte(cleaned), &out))
	assert.Equal(t, map[string]int{"a": 1}, out)
}

func TestCleanJSONResponseProseWrapped(t *testing.T) {
	raw := "Sure! The companies you asked about: {\"companies\":[]} Hope this helps."
	cleaned := CleanJSONResponse(raw)
	assert.Equal(t, byte('{'), cleaned[0])

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(cleaned[:len("{\"companies\":[]}")]), &out))
}

func TestCleanJSONResponseFirstToken(t *testing.T) {
	// The array opens before the object: the array wins
	cleaned := CleanJSONResponse("data: [1,2,{\"a\":3}]")
	assert.Equal(t, byte('['), cleaned[0])

	// The object opens first
	cleaned = CleanJSONResponse("{\"list\":[1]}")
	assert.Equal(t, byte('{'), cleaned[0])
}

func TestCleanJSONResponseNoToken(t *testing.T) {
	assert.Equal(t, "{}", CleanJSONResponse("no structured data here"))
	assert.Equal(t, "{}", CleanJSONResponse(""))
}

func TestDecodeLooseStrict(t *testing.T) {
	var out struct {
		News []struct {
			Title string `json:"title"`
		} `json:"news"`
	}
	raw := "```json\n{\"news\":[{\"title\":\"DOOH revenue beats expectations\"}]}\n```"
	require.NoError(t, DecodeLoose(raw, &out))
	require.Len(t, out.News, 1)
	assert.Equal(t, "DOOH revenue beats expectations", out.News[0].Title)
}

func TestDecodeLooseRepairsTrailingComma(t *testing.T) {
	var out map[string]any
	raw := "{\"a\": 1, \"b\": [1, 2,],}"
	require.NoError(t, DecodeLoose(raw, &out))
	assert.Equal(t, float64(1), out["a"])
}

func TestDecodeLooseUnrecoverable(t *testing.T) {
	var out map[string]any
	err := DecodeLoose("total nonsense without structure", &out)
	// "{}" default decodes to an empty object — never an error for a map target
	assert.NoError(t, err)
	assert.Empty(t, out)
}
