package analyzer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mj1618/mobile-locator/internal/locator"
	"github.com/mj1618/mobile-locator/internal/model"
)

var phone = model.Size{Width: 1080, Height: 1920}

const loginSource = `<?xml version="1.0" encoding="UTF-8"?>
<hierarchy rotation="0">
  <android.widget.FrameLayout class="android.widget.FrameLayout" bounds="[0,0][1080,1920]">
    <android.widget.LinearLayout class="android.widget.LinearLayout" bounds="[0,0][1080,1200]">
      <android.widget.TextView class="android.widget.TextView" resource-id="com.app:id/toolbar_title" text="Welcome Back" bounds="[340,50][740,130]"/>
      <android.widget.TextView class="android.widget.TextView" text="Email" bounds="[40,300][400,350]"/>
      <android.widget.EditText class="android.widget.EditText" text="" bounds="[40,360][1040,440]"/>
      <android.widget.EditText class="android.widget.EditText" password="true" text="" bounds="[40,460][1040,540]"/>
      <android.widget.Button class="android.widget.Button" resource-id="com.app:id/login_btn" text="Login" bounds="[40,600][1040,680]"/>
      <android.widget.Button class="android.widget.Button" text="Help" bounds="[40,700][500,780]"/>
      <android.widget.Button class="android.widget.Button" text="Help" bounds="[540,700][1040,780]"/>
      <android.view.View class="android.view.View" bounds="[0,800][1080,900]"/>
      <android.widget.ImageView class="android.widget.ImageView" content-desc="Logo" bounds="[0,950][5,955]"/>
    </android.widget.LinearLayout>
  </android.widget.FrameLayout>
</hierarchy>`

func byLocator(res *Result) map[string]Element {
	out := make(map[string]Element, len(res.Elements))
	for _, el := range res.Elements {
		out[el.Locator] = el
	}
	return out
}

func TestAnalyze_SingleAndroidID(t *testing.T) {
	src := `<node resource-id="login_btn" bounds="[0,0][100,50]"/>`
	res, err := Analyze(src, Options{Platform: model.Android, Window: phone})
	require.NoError(t, err)
	require.Len(t, res.Elements, 1)
	el := res.Elements[0]
	assert.Equal(t, "id=login_btn", el.Locator)
	assert.Equal(t, locator.StrategyID, el.Strategy)
	assert.Equal(t, model.Bounds{X: 0, Y: 0, Width: 100, Height: 50, Area: 5000}, el.Bounds)
	assert.Equal(t, "${selector_page_login_btn_button}", el.VariableName)
	assert.Equal(t, "/node", el.DebugPath)
}

func TestAnalyze_SingleIOSAccessibility(t *testing.T) {
	src := `<XCUIElementTypeButton type="XCUIElementTypeButton" name="Submit" x="10" y="10" width="40" height="20"/>`
	res, err := Analyze(src, Options{Platform: model.IOS, Window: model.Size{Width: 390, Height: 844}})
	require.NoError(t, err)
	require.Len(t, res.Elements, 1)
	el := res.Elements[0]
	assert.Equal(t, "accessibility_id=Submit", el.Locator)
	assert.Equal(t, locator.StrategyAccessibilityID, el.Strategy)
	assert.Equal(t, "submit", res.PageName)
	assert.Equal(t, "${selector_submit_submit_button}", el.VariableName)
}

func TestAnalyze_DropsNearFullScreenNode(t *testing.T) {
	src := `<hierarchy>
  <android.widget.Button class="android.widget.Button" resource-id="com.app:id/big" text="Big" bounds="[0,0][1000,1920]"/>
  <android.widget.Button class="android.widget.Button" resource-id="com.app:id/small" text="Small" bounds="[10,10][110,60]"/>
</hierarchy>`
	res, err := Analyze(src, Options{Platform: model.Android, Window: model.Size{Width: 1000, Height: 2000}})
	require.NoError(t, err)
	require.Len(t, res.Elements, 1)
	assert.Equal(t, "id=com.app:id/small", res.Elements[0].Locator)
}

func TestAnalyze_ParseError(t *testing.T) {
	for _, src := range []string{"", "not xml"} {
		res, err := Analyze(src, Options{Platform: model.Android, Window: phone})
		assert.Nil(t, res)
		assert.True(t, errors.Is(err, model.ErrParse), "source %q: %v", src, err)
	}
}

func TestAnalyze_EmptyResultIsNotAnError(t *testing.T) {
	src := `<hierarchy><android.widget.FrameLayout class="android.widget.FrameLayout" bounds="[0,0][5,5]"/></hierarchy>`
	res, err := Analyze(src, Options{Platform: model.Android, Window: phone})
	require.NoError(t, err)
	assert.NotNil(t, res.Elements)
	assert.Empty(t, res.Elements)
	assert.Equal(t, "page", res.PageName)
}

func TestAnalyze_Pipeline(t *testing.T) {
	res, err := Analyze(loginSource, Options{Platform: model.Android, Window: phone})
	require.NoError(t, err)
	assert.Equal(t, "welcome_back", res.PageName)

	els := byLocator(res)
	assert.Len(t, res.Elements, 7)

	login, ok := els["id=com.app:id/login_btn"]
	require.True(t, ok)
	assert.Equal(t, "${selector_welcome_back_login_btn_button}", login.VariableName)
	assert.Equal(t, "Login", login.DisplayText)

	email, ok := els["xpath=(//*[contains(@text, 'Email') or contains(@content-desc, 'Email')]/following::android.widget.EditText)[1]"]
	require.True(t, ok, "anchor locator for the email field")
	assert.Equal(t, locator.StrategyAnchor, email.Strategy)
	assert.Equal(t, "${selector_welcome_back_email_input}", email.VariableName)

	var helps []string
	for _, el := range res.Elements {
		if el.DisplayText == "Help" {
			helps = append(helps, el.VariableName)
		}
	}
	assert.Equal(t, []string{"${selector_welcome_back_help_button}", "${selector_welcome_back_help_button_2}"}, helps)

	for _, el := range res.Elements {
		assert.NotEqual(t, "android.view.View", el.Type, "empty generic view must be filtered")
		assert.NotEqual(t, "Logo", el.DisplayText, "undersized element must be filtered")
	}
}

func TestAnalyze_Prefix(t *testing.T) {
	res, err := Analyze(loginSource, Options{Platform: model.Android, Window: phone, Prefix: "Checkout Page"})
	require.NoError(t, err)
	assert.Equal(t, "checkout_page", res.PageName)

	res, err = Analyze(loginSource, Options{Platform: model.Android, Window: phone, Prefix: "login"})
	require.NoError(t, err)
	assert.Equal(t, "welcome_back", res.PageName)
}

func TestAnalyze_Verify(t *testing.T) {
	res, err := Analyze(loginSource, Options{Platform: model.Android, Window: phone, Verify: true})
	require.NoError(t, err)
	plain, err := Analyze(loginSource, Options{Platform: model.Android, Window: phone})
	require.NoError(t, err)
	require.Equal(t, len(plain.Elements), len(res.Elements))

	for i, el := range res.Elements {
		require.NotNil(t, el.Verified, el.Locator)
		assert.True(t, *el.Verified, el.Locator)
		assert.Equal(t, plain.Elements[i].Strategy, el.Strategy)
		assert.Nil(t, plain.Elements[i].Verified)
	}
}

func TestAnalyze_CustomThresholds(t *testing.T) {
	th := model.Thresholds{MinWidth: 1, MinHeight: 1, MaxScreenRatio: 0.95}
	res, err := Analyze(loginSource, Options{Platform: model.Android, Window: phone, Thresholds: &th})
	require.NoError(t, err)
	_, ok := byLocator(res)["accessibility_id=Logo"]
	assert.True(t, ok)
}

func TestFindElementAt(t *testing.T) {
	src := `<hierarchy>
  <android.widget.FrameLayout class="android.widget.FrameLayout" bounds="[0,0][100,100]"/>
  <android.widget.Button class="android.widget.Button" text="OK" bounds="[5,5][50,50]"/>
</hierarchy>`
	el, err := FindElementAt(src, 15, 15, Options{Platform: model.Android, Window: phone})
	require.NoError(t, err)
	require.NotNil(t, el)
	assert.Equal(t, "OK", el.DisplayText)
	assert.Equal(t, "xpath=//android.widget.Button[@text='OK']", el.Locator)

	el, err = FindElementAt(src, 500, 500, Options{Platform: model.Android, Window: phone})
	require.NoError(t, err)
	assert.Nil(t, el)

	_, err = FindElementAt("", 1, 1, Options{Platform: model.Android})
	assert.ErrorIs(t, err, model.ErrParse)
}
