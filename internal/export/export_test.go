package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mj1618/mobile-locator/internal/analyzer"
	"github.com/mj1618/mobile-locator/internal/locator"
)

var sample = &analyzer.Result{
	PageName: "login",
	Platform: "ANDROID",
	Elements: []analyzer.Element{
		{VariableName: "${selector_login_login_btn_button}", Locator: "id=com.app:id/login_btn", Strategy: locator.StrategyID},
		{VariableName: "${selector_login_email_input}", Locator: `xpath=//android.widget.EditText[@text="it's"]`, Strategy: locator.StrategyText},
		{VariableName: "${selector_login_logo_icon}", Locator: "accessibility_id=Logo", Strategy: locator.StrategyAccessibilityID},
		{DisplayText: "unresolved"},
	},
}

func TestRobot(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Robot(&buf, sample))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "*** Settings ***\n"))
	assert.Contains(t, out, "*** Variables ***\n")
	lines := strings.Split(strings.TrimSpace(out[strings.Index(out, "*** Variables ***"):]), "\n")
	require.Len(t, lines, 4)
	assert.Regexp(t, `^\$\{selector_login_login_btn_button\}\s{4,}id=com\.app:id/login_btn$`, lines[1])
	assert.True(t, strings.HasSuffix(lines[2], `xpath=//android.widget.EditText[@text="it's"]`))
}

func TestRobot_EscapesSpacesAndBackslashes(t *testing.T) {
	assert.Equal(t, `xpath=//a[@text='a \ b']`, robotEscape(`xpath=//a[@text='a  b']`))
	assert.Equal(t, `a\\b`, robotEscape(`a\b`))
}

func TestPython(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Python(&buf, sample))
	out := buf.String()

	assert.Contains(t, out, "from appium.webdriver.common.appiumby import AppiumBy\n")
	assert.Contains(t, out, `SELECTOR_LOGIN_LOGIN_BTN_BUTTON = (AppiumBy.ID, "com.app:id/login_btn")`)
	assert.Contains(t, out, `SELECTOR_LOGIN_EMAIL_INPUT = (AppiumBy.XPATH, "//android.widget.EditText[@text=\"it's\"]")`)
	assert.Contains(t, out, `SELECTOR_LOGIN_LOGO_ICON = (AppiumBy.ACCESSIBILITY_ID, "Logo")`)
	assert.NotContains(t, out, "unresolved")
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "PY", sample))
	assert.Contains(t, buf.String(), "AppiumBy")
	assert.Error(t, Write(&buf, "csv", sample))
}
