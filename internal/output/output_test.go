package output

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mj1618/mobile-locator/internal/analyzer"
	"github.com/mj1618/mobile-locator/internal/locator"
	"github.com/mj1618/mobile-locator/internal/model"
)

var sample = analyzer.Result{
	PageName: "login",
	Platform: "ANDROID",
	Elements: []analyzer.Element{{
		Bounds:       model.Bounds{X: 10, Y: 20, Width: 100, Height: 30, Area: 3000},
		VariableName: "${selector_login_ok_button}",
		Locator:      "id=com.app:id/ok",
		Strategy:     locator.StrategyID,
		DisplayText:  "OK",
		Type:         "android.widget.Button",
		DebugPath:    "/hierarchy/android.widget.Button",
	}},
}

func TestPrint_YAML(t *testing.T) {
	var buf bytes.Buffer
	Stdout = &buf
	defer func() { Stdout = os.Stdout }()
	OutputFormat = FormatYAML
	require.NoError(t, Print(sample))

	assert.Contains(t, buf.String(), "strategy: ID")
	var decoded analyzer.Result
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Elements, 1)
	assert.Equal(t, locator.StrategyID, decoded.Elements[0].Strategy)
	assert.Equal(t, 100, decoded.Elements[0].Bounds.Width)
}

func TestFprint_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Fprint(&buf, FormatJSON, sample))
	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "\n"), "compact JSON is one line")
	assert.Contains(t, out, `"locator":"id=com.app:id/ok"`)
	assert.Contains(t, out, `"variable_name":"${selector_login_ok_button}"`, "HTML escaping is off")
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
}

func TestFprint_PrettyJSON(t *testing.T) {
	PrettyOutput = true
	defer func() { PrettyOutput = false }()

	out, err := Sprint(FormatJSON, sample)
	require.NoError(t, err)
	assert.Contains(t, out, "\n  \"page_name\": \"login\"")
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"yaml": FormatYAML, "YML": FormatYAML, "json": FormatJSON} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}
