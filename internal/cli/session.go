package cli

import (
	"os"

	"github.com/ariel-frischer/folio/internal/config"
	"github.com/ariel-frischer/folio/internal/content"
	apperrors "github.com/ariel-frischer/folio/internal/errors"
	"github.com/ariel-frischer/folio/internal/report"
	"github.com/ariel-frischer/folio/internal/score"
	"github.com/ariel-frischer/folio/internal/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// session holds the configuration, resolved directories and loaded content
// of one site.
type session struct {
	cfg   *config.Configuration
	paths config.Paths
	site  *content.Site
}

// openSession loads the site named by args using the --config flag.
func openSession(cmd *cobra.Command, args []string) (*session, error) {
	configPath, _ := cmd.Flags().GetString("config")
	return newSession(siteRootArg(args), configPath)
}

func newSession(root, configPath string) (*session, error) {
	cfg, err := config.Load(root, configPath)
	if err != nil {
		return nil, apperrors.ConfigLoadFailed(err)
	}
	paths, err := cfg.Resolve(root)
	if err != nil {
		return nil, apperrors.ConfigLoadFailed(err)
	}

	s := &session{cfg: cfg, paths: paths}
	if err := s.reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// reload re-reads the content directory.
func (s *session) reload() error {
	if info, err := os.Stat(s.paths.Content); err != nil || !info.IsDir() {
		return apperrors.ContentDirNotFound(s.paths.Content)
	}
	site, err := content.Load(s.paths.Root, s.paths.Content)
	if err != nil {
		return apperrors.Wrap(err, apperrors.Runtime)
	}
	logger.Debug("loaded content",
		zap.String("dir", s.paths.Content),
		zap.Int("documents", len(site.Documents)),
		zap.Int("failures", len(site.Failures)))
	s.site = site
	return nil
}

func (s *session) validator() *validation.Validator {
	return validation.New(validation.Options{
		Root:     s.paths.Root,
		MinWords: s.cfg.MinWordsByType(),
		Logger:   logger,
	})
}

// check validates and scores the loaded content.
func (s *session) check(strict bool, minScore int) *report.Report {
	return &report.Report{
		Root:       s.paths.Root,
		Validation: s.validator().ValidateSite(s.site),
		Score:      score.Score(s.site.Portfolio()),
		Strict:     strict,
		MinScore:   minScore,
	}
}
