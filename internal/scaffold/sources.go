package scaffold

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/pkgsmith-labs/pkgsmith/internal/profile"
)

// sourceData feeds the fixed source templates written during a run.
type sourceData struct {
	Namespace   string // e.g. Acme\MyCoolTool
	ClassName   string // e.g. CoolTool
	Provider    string // e.g. MyCoolToolServiceProvider
	PackageSlug string // e.g. my-cool-tool
}

const classTemplate = `<?php

namespace {{.Namespace}};

class {{.ClassName}}
{
}
`

const providerTemplate = `<?php

namespace {{.Namespace}};

use Illuminate\Support\ServiceProvider;

class {{.Provider}} extends ServiceProvider
{
    public function boot(): void
    {
        $this->publishes([
            __DIR__.'/../config/{{.PackageSlug}}.php' => config_path('{{.PackageSlug}}.php'),
        ], '{{.PackageSlug}}-config');

        $this->loadViewsFrom(__DIR__.'/../resources/views', '{{.PackageSlug}}');
    }

    public function register(): void
    {
        $this->mergeConfigFrom(__DIR__.'/../config/{{.PackageSlug}}.php', '{{.PackageSlug}}');
    }
}
`

const facadeTemplate = `<?php

namespace {{.Namespace}}\Facades;

use Illuminate\Support\Facades\Facade;

class {{.ClassName}} extends Facade
{
    protected static function getFacadeAccessor(): string
    {
        return \{{.Namespace}}\{{.ClassName}}::class;
    }
}
`

const pestBootstrapTemplate = `<?php

uses({{.Namespace}}\Tests\TestCase::class)->in(__DIR__);
`

// writeSource renders one fixed source template into the tree.
func writeSource(root, rel, tmplText string, data sourceData) error {
	tmpl, err := template.New(filepath.Base(rel)).Parse(tmplText)
	if err != nil {
		return fmt.Errorf("parsing source template %s: %w", rel, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("rendering %s: %w", rel, err)
	}

	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("writing %s: %w", rel, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", rel, err)
	}
	return nil
}

func newSourceData(p *profile.Profile) sourceData {
	return sourceData{
		Namespace:   p.VendorNamespace() + `\` + p.PackageNamespace(),
		ClassName:   p.ClassName,
		Provider:    p.ProviderClass(),
		PackageSlug: p.PackageSlug,
	}
}
