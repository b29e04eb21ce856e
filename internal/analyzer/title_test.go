package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mj1618/mobile-locator/internal/model"
)

func TestEstimatePageName(t *testing.T) {
	tests := []struct {
		name   string
		source string
		p      model.Platform
		window model.Size
		want   string
	}{
		{
			name: "title id wins over higher text",
			source: `<hierarchy>
  <android.widget.TextView class="android.widget.TextView" text="Back" bounds="[0,20][100,60]"/>
  <android.widget.TextView class="android.widget.TextView" resource-id="com.app:id/toolbar_title" text="Ayarlar" bounds="[340,50][740,130]"/>
</hierarchy>`,
			p:      model.Android,
			window: phone,
			want:   "ayarlar",
		},
		{
			name: "below header region ignored",
			source: `<hierarchy>
  <android.widget.TextView class="android.widget.TextView" text="Footer" bounds="[340,1700][740,1780]"/>
</hierarchy>`,
			p:      model.Android,
			window: phone,
			want:   "page",
		},
		{
			name: "numeric and too long skipped",
			source: `<hierarchy>
  <android.widget.TextView class="android.widget.TextView" text="12:45" bounds="[0,0][100,40]"/>
  <android.widget.TextView class="android.widget.TextView" text="A very long caption that is not a title at all" bounds="[0,40][800,90]"/>
  <android.widget.TextView class="android.widget.TextView" text="Profil Düzenle" bounds="[0,100][300,140]"/>
</hierarchy>`,
			p:      model.Android,
			window: phone,
			want:   "profil_duzenle",
		},
		{
			name: "ios header identifier",
			source: `<AppiumAUT>
  <XCUIElementTypeStaticText type="XCUIElementTypeStaticText" name="nav_header" label="Inbox" x="150" y="50" width="90" height="40"/>
  <XCUIElementTypeButton type="XCUIElementTypeButton" label="Edit" x="0" y="40" width="60" height="40"/>
</AppiumAUT>`,
			p:      model.IOS,
			window: model.Size{Width: 390, Height: 844},
			want:   "inbox",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := model.ParseTree(tt.source)
			require.NoError(t, err)
			assert.Equal(t, tt.want, EstimatePageName(tree, tt.p, tt.window))
		})
	}
}
