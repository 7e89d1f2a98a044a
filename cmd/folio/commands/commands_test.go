package commands_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/folio-site/folio/cmd/folio/commands"
	"github.com/folio-site/folio/internal/adapters/markup"
	"github.com/folio-site/folio/internal/adapters/telemetry"
	"github.com/folio-site/folio/internal/app"
	"github.com/folio-site/folio/internal/core/domain"
	"github.com/folio-site/folio/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	loader   *mocks.MockConfigLoader
	scanner  *mocks.MockSourceScanner
	fetchers *mocks.MockFetcherFactory
	fetcher  *mocks.MockManifestFetcher
	cli      *commands.CLI
	stdout   *bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		loader:   mocks.NewMockConfigLoader(ctrl),
		scanner:  mocks.NewMockSourceScanner(ctrl),
		fetchers: mocks.NewMockFetcherFactory(ctrl),
		fetcher:  mocks.NewMockManifestFetcher(ctrl),
		stdout:   &bytes.Buffer{},
	}

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()

	a := app.New(
		f.loader,
		f.scanner,
		mocks.NewMockImageCodec(ctrl),
		mocks.NewMockManifestStore(ctrl),
		f.fetchers,
		markup.NewRenderer(),
		telemetry.NewNoOpTracer(),
		mocks.NewMockRenderer(ctrl),
		mocks.NewMockWatcher(ctrl),
		log,
	)
	f.cli = commands.New(a)
	f.cli.SetOutput(f.stdout, &bytes.Buffer{})
	return f
}

func (f *fixture) execute(args ...string) error {
	f.cli.SetArgs(args)
	return f.cli.Execute(context.Background())
}

func TestBuild_Success(t *testing.T) {
	f := newFixture(t)

	cfg := domain.DefaultConfig()
	f.loader.EXPECT().Load("folio.yaml").Return(cfg, nil)
	f.scanner.EXPECT().Scan(cfg.Roots, gomock.Any()).Return(domain.ScanResult{})

	require.NoError(t, f.execute("build", "--json"))
}

func TestBuild_FlagsForwarded(t *testing.T) {
	f := newFixture(t)

	cfg := domain.DefaultConfig()
	f.loader.EXPECT().Load("site/folio.yaml").Return(cfg, nil)
	f.scanner.EXPECT().Scan(cfg.Roots, gomock.Any()).Return(domain.ScanResult{})

	require.NoError(t, f.execute("build", "-c", "site/folio.yaml", "-j", "3", "--json"))
	assert.Equal(t, 3, cfg.Concurrency)
}

func TestBuild_ImageFailuresDoNotFail(t *testing.T) {
	f := newFixture(t)

	cfg := domain.DefaultConfig()
	f.loader.EXPECT().Load("folio.yaml").Return(cfg, nil)
	f.scanner.EXPECT().Scan(cfg.Roots, gomock.Any()).Return(domain.ScanResult{
		Failures: []domain.RootFailure{{Root: "images", Err: domain.ErrRootScanFailed}},
	})

	require.NoError(t, f.execute("build", "--json"))
}

func TestBuild_ConfigError(t *testing.T) {
	f := newFixture(t)

	f.loader.EXPECT().Load("folio.yaml").Return(nil, domain.ErrInvalidConfig)

	err := f.execute("build", "--json")
	require.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestBuild_RejectsArguments(t *testing.T) {
	f := newFixture(t)

	require.Error(t, f.execute("build", "images"))
}

func TestResolve_NoArgsShowsHelp(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.execute("resolve"))
	assert.Contains(t, f.stdout.String(), "resolve <ref>...")
}

func TestResolve_PrintsJSON(t *testing.T) {
	f := newFixture(t)

	f.loader.EXPECT().Load("folio.yaml").Return(domain.DefaultConfig(), nil)
	f.fetchers.EXPECT().ForSource("public").Return(f.fetcher, nil)
	f.fetcher.EXPECT().Fetch(gomock.Any(), "residential").Return(nil, domain.ErrManifestNotFound)

	require.NoError(t, f.execute("resolve", "--root", "public", "residential/villa.png"))
	assert.Contains(t, f.stdout.String(), `"fallback": "residential/villa.png"`)
}

func TestRender_RequiresProjectList(t *testing.T) {
	f := newFixture(t)

	require.Error(t, f.execute("render"))
}

func TestVersion(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.execute("version"))
	assert.Contains(t, f.stdout.String(), "folio version dev")
}

func TestVersionFlag(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.execute("--version"))
	assert.Contains(t, f.stdout.String(), "dev")
}
