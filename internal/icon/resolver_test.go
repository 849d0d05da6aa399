package icon

import (
	"testing"

	"github.com/bornholm/submenu/pkg/navigation"
)

func TestIcon(t *testing.T) {
	resolver := NewResolver(navigation.URLResolverFunc(func(path string) string {
		return "https://cms.example.org/" + path
	}))

	testCases := map[string]string{
		"":                            "",
		"fa-dashboard":                `<i class="fa fa-dashboard"></i>`,
		"glyphicons glyphicons-cog":   `<i class="glyphicons glyphicons-cog"></i>`,
		"images/groups/content.svg":   `<img class="icon" src="https://cms.example.org/images/groups/content.svg" alt="">`,
		"https://cdn.test/logo.PNG":   `<img class="icon" src="https://cdn.test/logo.PNG" alt="">`,
		`"><script>alert(1)</script>`: `<i class="&#34;&gt;&lt;script&gt;alert(1)&lt;/script&gt;"></i>`,
	}

	for identifier, e := range testCases {
		if g := resolver.Icon(identifier); e != g {
			t.Errorf("resolver.Icon(%q): expected '%v', got '%v'", identifier, e, g)
		}
	}
}
