package pipeline

import (
	"context"
	"testing"
)

func TestInjectCSS(t *testing.T) {
	t.Parallel()

	const css = "p{color:red}"
	const block = "<style>\n" + css + "\n</style>\n"

	tests := []struct {
		name string
		html string
		css  string
		want string
	}{
		{
			name: "before closing head",
			html: "<html><head></head><body></body></html>",
			css:  css,
			want: "<html><head>" + block + "</head><body></body></html>",
		},
		{
			name: "uppercase head",
			html: "<HEAD></HEAD>",
			css:  css,
			want: "<HEAD>" + block + "</HEAD>",
		},
		{
			name: "after body with attributes",
			html: `<body class="x"><p>a</p></body>`,
			css:  css,
			want: `<body class="x">` + block + "<p>a</p></body>",
		},
		{
			name: "prepended to fragment",
			html: "<p>a</p>",
			css:  css,
			want: block + "<p>a</p>",
		},
		{
			name: "empty css",
			html: "<p>a</p>",
			want: "<p>a</p>",
		},
		{
			name: "style breakout escaped",
			html: "<p>a</p>",
			css:  "</style><script>",
			want: "<style>\n<\\/style><script>\n</style>\n<p>a</p>",
		},
	}

	injector := &CSSInjection{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := injector.InjectCSS(context.Background(), tt.html, tt.css); got != tt.want {
				t.Errorf("InjectCSS() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInjectCSS_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	injector := &CSSInjection{}
	if got := injector.InjectCSS(ctx, "<p>a</p>", "p{}"); got != "<p>a</p>" {
		t.Errorf("InjectCSS() with cancelled context = %q, want unchanged", got)
	}
}
