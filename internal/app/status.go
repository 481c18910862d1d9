package app

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/muleboot/internal/core/domain"
	"go.trai.ch/muleboot/internal/ui/output"
	"go.trai.ch/muleboot/internal/ui/style"
	"go.trai.ch/zerr"
)

// Report describes the bootstrap state of a project without changing it.
type Report struct {
	Root           string
	Tag            string
	Handoff        domain.HandoffMode
	EnvDir         string
	EnvExists      bool
	Manifest       string
	ManifestExists bool
	ManifestHash   string
	Requirements   []domain.Requirement
	Unrecognized   []string
	Duplicates     []string
	Record         *domain.BootstrapRecord
}

// Stale reports whether the manifest changed since the last recorded install.
func (r *Report) Stale() bool {
	return r.Record != nil && r.ManifestExists && r.Record.ManifestHash != r.ManifestHash
}

// Inspect gathers the Report for the configured project.
func (a *App) Inspect(_ context.Context) (*Report, error) {
	cfg, err := a.load()
	if err != nil {
		return nil, err
	}

	env := cfg.Environment()
	r := &Report{
		Root:     cfg.Root,
		Tag:      cfg.Tag,
		Handoff:  cfg.Handoff,
		EnvDir:   env.Dir,
		Manifest: cfg.ManifestPath(),
	}

	if r.EnvExists, err = a.envs.Exists(env); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to inspect environment"), "path", env.Dir)
	}

	if r.ManifestExists, err = a.manifests.Exists(r.Manifest); err != nil {
		return nil, zerr.Wrap(err, domain.ErrManifestReadFailed.Error())
	}
	if r.ManifestExists {
		data, manifest, readErr := a.manifests.Read(r.Manifest)
		if readErr != nil {
			return nil, readErr
		}
		r.ManifestHash = a.hasher.Sum(data)
		r.Requirements = manifest.Requirements()
		r.Unrecognized = manifest.Unrecognized()
		r.Duplicates = manifest.Duplicates()
	}

	if r.EnvExists {
		if r.Record, err = a.state.Get(env.Dir); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Status writes a human-readable Report to w.
func (a *App) Status(ctx context.Context, w io.Writer) error {
	r, err := a.Inspect(ctx)
	if err != nil {
		return err
	}
	r.Render(w)
	return nil
}

const labelWidth = 14

// Render writes the report to w.
func (r *Report) Render(w io.Writer) {
	out := output.New(w)
	ok := out.String(style.Check).Foreground(termenv.RGBColor(string(style.Green))).String()
	missing := out.String(style.Cross).Foreground(termenv.RGBColor(string(style.Red))).String()
	warn := out.String(style.Warning).Foreground(termenv.RGBColor(string(style.Gold))).String()
	dim := func(s string) string {
		return out.String(s).Foreground(termenv.RGBColor(string(style.Muted))).String()
	}

	var b strings.Builder
	tag := out.String(style.Tag(r.Tag)).Foreground(termenv.RGBColor(string(style.Amber))).Bold().String()
	b.WriteString(tag + " " + domain.ToolName + " status\n")

	row := func(label, value string) {
		fmt.Fprintf(&b, "%-*s%s\n", labelWidth, label, value)
	}
	indent := strings.Repeat(" ", labelWidth)

	row("root", r.Root)
	row("handoff", string(r.Handoff))

	if r.EnvExists {
		row("environment", ok+" "+r.EnvDir)
	} else {
		row("environment", missing+" "+r.EnvDir+" "+dim("(created on next run)"))
	}

	if !r.ManifestExists {
		row("manifest", missing+" "+r.Manifest+" "+dim("(default written on next run)"))
	} else {
		row("manifest", ok+" "+r.Manifest+" "+dim("("+plural(len(r.Requirements), "requirement")+")"))
		for _, req := range r.Requirements {
			b.WriteString(indent + style.Dot + " " + req.String() + "\n")
		}
		for _, line := range r.Unrecognized {
			b.WriteString(indent + style.Dot + " " + dim(line) + "\n")
		}
		for _, name := range r.Duplicates {
			b.WriteString(indent + warn + " " + name + " is listed more than once\n")
		}
	}

	if r.Record == nil {
		row("last install", dim("never"))
	} else {
		row("last install", fmt.Sprintf("%s by %s %s",
			r.Record.InstalledAt.UTC().Format(time.DateTime+" MST"), domain.ToolName, r.Record.ToolVersion))
		if r.Stale() {
			b.WriteString(indent + warn + " manifest changed since last install\n")
		}
	}

	_, _ = io.WriteString(w, b.String())
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
