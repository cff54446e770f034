package pipeline

import "testing"

func TestCSSInjection_InjectCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		css  string
		want string
	}{
		{
			name: "empty CSS returns document unchanged",
			doc:  "<html><head></head><body></body></html>",
			css:  "",
			want: "<html><head></head><body></body></html>",
		},
		{
			name: "inserts before closing head",
			doc:  "<html><head><title>x</title></head><body></body></html>",
			css:  "body{color:red}",
			want: "<html><head><title>x</title><style>body{color:red}</style></head><body></body></html>",
		},
		{
			name: "case-insensitive head match",
			doc:  "<HTML><HEAD></HEAD></HTML>",
			css:  "p{}",
			want: "<HTML><HEAD><style>p{}</style></HEAD></HTML>",
		},
		{
			name: "falls back to after body",
			doc:  `<body class="x"><p>hi</p></body>`,
			css:  "p{}",
			want: `<body class="x"><style>p{}</style><p>hi</p></body>`,
		},
		{
			name: "prepends without head or body",
			doc:  "<p>hi</p>",
			css:  "p{}",
			want: "<style>p{}</style><p>hi</p>",
		},
		{
			name: "escapes closing style sequence",
			doc:  "<head></head>",
			css:  "a{}</style><script>alert(1)</script>",
			want: `<head><style>a{}<\/style><script>alert(1)<\/script></style></head>`,
		},
	}

	inj := &CSSInjection{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := inj.InjectCSS(tt.doc, tt.css); got != tt.want {
				t.Errorf("InjectCSS() = %q, want %q", got, tt.want)
			}
		})
	}
}
