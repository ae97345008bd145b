package tufte

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-md2tufte/internal/mdast"
)

// ---------------------------------------------------------------------------
// TestNewPipeline - Pass selection and ordering checks
// ---------------------------------------------------------------------------

func TestNewPipeline_UnknownPass(t *testing.T) {
	t.Parallel()

	_, err := NewPipeline([]string{PassSections, "footers"})
	if !errors.Is(err, ErrUnknownPass) {
		t.Fatalf("error = %v, want ErrUnknownPass", err)
	}
	if !strings.Contains(err.Error(), `"footers"`) {
		t.Errorf("error should name the pass: %v", err)
	}
}

func TestNewPipeline_Names(t *testing.T) {
	t.Parallel()

	p, err := NewPipeline(DefaultPassNames)
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}
	if diff := cmp.Diff(DefaultPassNames, p.Names()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestNewPipeline_OrderingWarnings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		names []string
		want  []string
	}{
		{
			name:  "default order is clean",
			names: DefaultPassNames,
		},
		{
			name:  "attribution after cite",
			names: []string{PassCite, PassAttribution},
			want:  []string{`pass "attribution" should run before "cite"`},
		},
		{
			name:  "cite after serializing passes",
			names: []string{PassSidenotes, PassNewThought, PassCite},
			want: []string{
				`pass "cite" should run before "sidenotes"`,
				`pass "cite" should run before "newthought"`,
			},
		},
		{
			name:  "sidenotes after serializing passes",
			names: []string{PassNewThought, PassImageFigure, PassDirectives, PassSidenotes},
			want: []string{
				`pass "sidenotes" should run before "newthought"`,
				`pass "sidenotes" should run before "image-figure"`,
				`pass "sidenotes" should run before "directives"`,
			},
		},
		{
			name:  "duplicate pass",
			names: []string{PassSections, PassSections},
			want:  []string{`pass "sections" is listed more than once`},
		},
		{
			name:  "omitted passes are not checked",
			names: []string{PassSidenotes},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, err := NewPipeline(tt.names)
			if err != nil {
				t.Fatalf("NewPipeline() error = %v", err)
			}
			report, err := p.Run(mdast.Root())
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			var got []string
			for _, d := range report.Diagnostics {
				got = append(got, d.Message)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPasses_MatchDefaultOrder(t *testing.T) {
	t.Parallel()

	var names []string
	for _, p := range Passes() {
		names = append(names, p.Name)
		if p.Description == "" {
			t.Errorf("pass %q has no description", p.Name)
		}
	}
	if diff := cmp.Diff(DefaultPassNames, names); diff != "" {
		t.Errorf("registry order mismatch (-want +got):\n%s", diff)
	}
}

// ---------------------------------------------------------------------------
// TestPipelineRun - Failure propagation
// ---------------------------------------------------------------------------

func TestPipelineRun_FailFast(t *testing.T) {
	t.Parallel()

	p, err := NewPipeline([]string{PassCite, PassNewThought})
	if err != nil {
		t.Fatal(err)
	}
	root := parse(t, ":nt[New] and :cite[X]{a b}\n")

	_, err = p.Run(root)
	if !errors.Is(err, ErrAmbiguousKey) {
		t.Fatalf("Run() error = %v, want ErrAmbiguousKey", err)
	}
	if !strings.HasPrefix(err.Error(), "pass cite: ") {
		t.Errorf("error should name the failing pass: %v", err)
	}
	if mdast.Find(root, mdast.IsKind(mdast.KindHTML)) != nil {
		t.Errorf("passes after the failing one must not run")
	}
}

func TestPipelineRun_NilTree(t *testing.T) {
	t.Parallel()

	p, err := NewPipeline(nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Run(nil); !errors.Is(err, ErrNilTree) {
		t.Errorf("Run(nil) error = %v, want ErrNilTree", err)
	}
}

func TestPipelineRun_LogsPasses(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	p, err := NewPipeline([]string{PassSections}, WithLogger(logger))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Run(mdast.Root()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "pass=sections") {
		t.Errorf("expected pass timing log, got %q", buf.String())
	}
}

// ---------------------------------------------------------------------------
// End to end
// ---------------------------------------------------------------------------

const handout = `# Tufte Handout

:nt[In his later books] Tufte argues[^1].

## Sidenotes

A claim^[{-} An inline margin note.] here.

![Exhibit](exhibit.png) Exhibit caption.

> Quote.
>
> :cite[Tufte]{key=tufte}

:::sans
Sans text.
:::

## Next

Done.

[^1]: A numbered sidenote.

[tufte]: https://example.com/tufte
`

func TestPipelineRun_Default(t *testing.T) {
	t.Parallel()

	p, err := NewPipeline(DefaultPassNames)
	if err != nil {
		t.Fatal(err)
	}
	root := parse(t, handout)
	report, err := p.Run(root)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(report.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %v", report.Diagnostics)
	}

	out := renderHTML(t, root)
	for _, want := range []string{
		`<span class="newthought">In his later books</span>`,
		`<label for="sn-1" class="margin-toggle sidenote-number"></label>`,
		`<span class="sidenote">A numbered sidenote.</span>`,
		`<span class="marginnote">An inline margin note.</span>`,
		`<section><h2>Sidenotes</h2>`,
		`<section><h2>Next</h2><p>Done.</p></section>`,
		`<figure><img src="exhibit.png" alt="Exhibit"/><label for="mn-figure-1"`,
		`<footer><a href="https://example.com/tufte">Tufte</a></footer>`,
		`<p class='sans'>Sans text.</p>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
	for _, unwanted := range []string{"fn-", "{-}", ":cite", "class=\"footnote\""} {
		if strings.Contains(out, unwanted) {
			t.Errorf("output should not contain %q\n%s", unwanted, out)
		}
	}
}

func TestPipelineRun_FootnotesInsideSerializedContent(t *testing.T) {
	t.Parallel()

	src := "![x](a.png) Caption[^1]\n\n:nt[Lead[^2]] text.\n\n:::sans\nSans[^3] block.\n:::\n\n" +
		"[^1]: Caption note.\n[^2]: Lead note.\n[^3]: Sans note.\n"

	p, err := NewPipeline(DefaultPassNames)
	if err != nil {
		t.Fatal(err)
	}
	root := parse(t, src)
	report, err := p.Run(root)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(report.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %v", report.Diagnostics)
	}

	out := renderHTML(t, root)
	for _, want := range []string{
		`<span class="marginnote"> Caption<label for="sn-1"`,
		`<span class="sidenote">Caption note.</span>`,
		`<span class="newthought">Lead<label for="sn-2"`,
		`<span class="sidenote">Lead note.</span>`,
		`<span class="sidenote">Sans note.</span>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "#fn-") {
		t.Errorf("footnote link left behind\n%s", out)
	}
}
