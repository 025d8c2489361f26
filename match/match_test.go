package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNothing(t *testing.T) {
	m := Nothing()
	for _, name := range []string{"", "a.js", "b.css", "nested/dir/c.map"} {
		assert.False(t, m.Match(name), name)
	}
}

func TestRegexp(t *testing.T) {
	m := MustRegexp(`\.css$`)
	assert.True(t, m.Match("b.css"))
	assert.True(t, m.Match("static/css/main.123.css"))
	assert.False(t, m.Match("a.js"))
	assert.False(t, m.Match("b.css.map"))

	_, err := CompileRegexp(`(`)
	assert.Error(t, err)
}

func TestLiteral(t *testing.T) {
	m := Literal(".map")
	assert.True(t, m.Match("a.js.map"))
	assert.True(t, m.Match("maps/.map/x"))
	assert.False(t, m.Match("a.js"))

	// A literal is not a pattern.
	assert.False(t, Literal("*.js").Match("a.js"))
	assert.False(t, Literal("").Match("a.js"))
}

func TestGlob(t *testing.T) {
	tests := []struct {
		pattern string
		name    string
		want    bool
	}{
		{pattern: "*.css", name: "b.css", want: true},
		{pattern: "*.css", name: "static/b.css", want: false},
		{pattern: "static/*.css", name: "static/b.css", want: true},
		{pattern: "static/", name: "static/js/a.js", want: true},
		{pattern: "static/", name: "static", want: true},
		{pattern: "static/", name: "staticfile.js", want: false},
		{pattern: "**/*.map", name: "a.js.map", want: true},
		{pattern: "**/*.map", name: "static/js/a.js.map", want: true},
		{pattern: "**/*.map", name: "static/js/a.js", want: false},
		{pattern: "static/**", name: "static/js/a.js", want: true},
		{pattern: "static/**", name: "public/a.js", want: false},
		{pattern: "index.?tml", name: "index.html", want: true},
		{pattern: "**.map", name: "a.map", want: true},
		{pattern: "**.map", name: "js/a.js.map", want: true},
		{pattern: "**.map", name: "js/a.js", want: false},
		{pattern: "static/**.js", name: "static/js/a.js", want: true},
		{pattern: "static/**.js", name: "static/a.js", want: true},
		{pattern: "static/**.js", name: "static/js/a.css", want: false},
		{pattern: "static/**.js", name: "public/a.js", want: false},
		{pattern: "**.min.*", name: "js/vendor.min.js", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"|"+tt.name, func(t *testing.T) {
			g, err := NewGlob(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, g.Match(tt.name))
		})
	}
}

func TestNewGlob_Invalid(t *testing.T) {
	for _, pattern := range []string{"", "[", "a/**/b/**"} {
		_, err := NewGlob(pattern)
		assert.Error(t, err, pattern)
	}
}

func TestAnyOf(t *testing.T) {
	assert.False(t, AnyOf().Match("a.js"))
	assert.False(t, AnyOf(nil, nil).Match("a.js"))

	m := AnyOf(Literal(".map"), MustRegexp(`\.css$`), nil)
	assert.True(t, m.Match("a.js.map"))
	assert.True(t, m.Match("b.css"))
	assert.False(t, m.Match("a.js"))
}

func TestFunc(t *testing.T) {
	m := Func(func(name string) bool { return name == "a.js" })
	assert.True(t, m.Match("a.js"))
	assert.False(t, m.Match("b.js"))
}

func TestParse(t *testing.T) {
	tests := []struct {
		expr    string
		match   []string
		noMatch []string
		wantErr bool
	}{
		{expr: "", noMatch: []string{"a.js", ""}},
		{expr: `/\.css$/`, match: []string{"b.css"}, noMatch: []string{"a.js"}},
		{expr: `\.css$`, match: []string{"b.css"}, noMatch: []string{"a.js"}},
		{expr: `regexp:^static/`, match: []string{"static/a.js"}, noMatch: []string{"a/static/b.js"}},
		{expr: "glob:**/*.map", match: []string{"js/a.js.map"}, noMatch: []string{"js/a.js"}},
		{expr: "literal:.min.", match: []string{"a.min.js"}, noMatch: []string{"aminjs"}},
		{expr: "regexp:(", wantErr: true},
		{expr: "glob:[", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			m, err := Parse(tt.expr)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			for _, name := range tt.match {
				assert.True(t, m.Match(name), name)
			}
			for _, name := range tt.noMatch {
				assert.False(t, m.Match(name), name)
			}
		})
	}
}

func TestParseAll(t *testing.T) {
	m, err := ParseAll([]string{`\.css$`, "glob:**/*.map"})
	require.NoError(t, err)
	assert.True(t, m.Match("b.css"))
	assert.True(t, m.Match("js/a.js.map"))
	assert.False(t, m.Match("a.js"))

	m, err = ParseAll(nil)
	require.NoError(t, err)
	assert.False(t, m.Match("a.js"))

	_, err = ParseAll([]string{"ok", "regexp:("})
	assert.Error(t, err)
}
