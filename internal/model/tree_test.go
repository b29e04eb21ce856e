package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const androidSource = `<?xml version="1.0" encoding="UTF-8"?>
<hierarchy rotation="0">
  <android.widget.FrameLayout class="android.widget.FrameLayout" bounds="[0,0][1080,1920]">
    <android.widget.Button class="android.widget.Button" text="Login" resource-id="com.app:id/login_btn" bounds="[100,200][300,280]"/>
    <android.widget.Button class="android.widget.Button" text="Sign Up" bounds="[100,300][300,380]"/>
    <android.widget.EditText class="android.widget.EditText" text="" password="true" bounds="[50,470][500,530]"/>
  </android.widget.FrameLayout>
</hierarchy>`

const iosSource = `<?xml version="1.0" encoding="UTF-8"?>
<AppiumAUT>
  <XCUIElementTypeApplication type="XCUIElementTypeApplication" name="Demo" x="0" y="0" width="390" height="844">
    <XCUIElementTypeButton type="XCUIElementTypeButton" name="Submit" label="Submit" x="10" y="10" width="40" height="20"/>
    <XCUIElementTypeStaticText type="XCUIElementTypeStaticText" value="Hello" x="10" y="40" width="100" height="20"/>
    <XCUIElementTypeSecureTextField type="XCUIElementTypeSecureTextField" x="10" y="70" width="200" height="30"/>
  </XCUIElementTypeApplication>
</AppiumAUT>`

func TestParseTree_DocumentOrder(t *testing.T) {
	tree, err := ParseTree(androidSource)
	require.NoError(t, err)
	require.Equal(t, 5, tree.Len())
	assert.Equal(t, "hierarchy", Tag(tree.Root()))
	for i, n := range tree.Nodes() {
		assert.Equal(t, i, tree.Index(n), Tag(n))
	}
	assert.Equal(t, "Login", Attr(tree.Nodes()[2], "text"))
}

func TestParseTree_Errors(t *testing.T) {
	for _, src := range []string{"", "   ", "not xml"} {
		_, err := ParseTree(src)
		require.Error(t, err, src)
		assert.ErrorIs(t, err, ErrParse, src)
		var pe *ParseError
		assert.ErrorAs(t, err, &pe, src)
	}
}

func TestSiblingPosition(t *testing.T) {
	tree, err := ParseTree(androidSource)
	require.NoError(t, err)
	nodes := tree.Nodes()

	pos, count := SiblingPosition(nodes[3])
	assert.Equal(t, [2]int{2, 2}, [2]int{pos, count}, "second button")
	pos, count = SiblingPosition(nodes[4])
	assert.Equal(t, [2]int{1, 1}, [2]int{pos, count}, "edit text")

	assert.Same(t, nodes[2], PrevElementSibling(nodes[3]))
	assert.Nil(t, ParentElement(tree.Root()))
}

func TestNormalize(t *testing.T) {
	tree, err := ParseTree(androidSource)
	require.NoError(t, err)
	info := Normalize(tree.Nodes()[2], Android)
	assert.Equal(t, "com.app:id/login_btn", info.ResourceID)
	assert.Equal(t, "Login", info.Text)
	assert.Equal(t, "text", info.TextAttr)
	assert.Equal(t, "login_btn", info.IDSuffix())

	pwd := Normalize(tree.Nodes()[4], Android)
	assert.True(t, pwd.IsPassword)
	assert.True(t, pwd.IsInput())

	ios, err := ParseTree(iosSource)
	require.NoError(t, err)
	btn := Normalize(ios.Nodes()[2], IOS)
	assert.Equal(t, "Submit", btn.AccessibilityLabel)
	assert.Equal(t, "Submit", btn.Text)
	assert.Equal(t, "label", btn.TextAttr)
	assert.Empty(t, btn.ResourceID)

	txt := Normalize(ios.Nodes()[3], IOS)
	assert.Equal(t, "Hello", txt.Text)
	assert.Equal(t, "value", txt.TextAttr)

	secure := Normalize(ios.Nodes()[4], IOS)
	assert.True(t, secure.IsPassword)
	assert.True(t, secure.IsInput())
}

func TestLabelCandidate_AnchorAttrsCoverIt(t *testing.T) {
	ios, err := ParseTree(iosSource)
	require.NoError(t, err)
	value, attr := LabelCandidate(ios.Nodes()[3], IOS)
	assert.Equal(t, "Hello", value)
	assert.Contains(t, AnchorAttrs(IOS), attr)

	tree, err := ParseTree(androidSource)
	require.NoError(t, err)
	value, attr = LabelCandidate(tree.Nodes()[2], Android)
	assert.Equal(t, "Login", value)
	assert.Contains(t, AnchorAttrs(Android), attr)
}

func TestParsePlatform(t *testing.T) {
	tests := []struct {
		in      string
		want    Platform
		wantErr bool
	}{
		{"", Android, false},
		{"android", Android, false},
		{"IOS", IOS, false},
		{" ios ", IOS, false},
		{"windows", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePlatform(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
		} else {
			assert.NoError(t, err, tt.in)
		}
		assert.Equal(t, tt.want, got, tt.in)
	}
}
