package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"linggen/cmd/linggen/ui"
	"linggen/internal/card"
	"linggen/internal/logging"
)

var (
	testCardPath string
	testName     string
)

// testCmd runs the interactive aptitude test
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Run the interactive aptitude test",
	Long: `Opens the testing hall. Press space or enter to test; the result is
committed to the card after a short delay and the card returns to idle.

With --card the card is loaded from (and saved back to) a YAML file.`,
	Args: cobra.NoArgs,
	RunE: runTest,
}

func init() {
	testCmd.Flags().StringVar(&testCardPath, "card", "", "Card file to load and update")
	testCmd.Flags().StringVar(&testName, "name", "", "Disciple name for a new card")
}

func runTest(cmd *cobra.Command, args []string) error {
	c, notice, err := prepareCard(testCardPath, testName, time.Now())
	if err != nil {
		return err
	}

	styles := ui.NewStyles(ui.ThemeFor(cfg.UI.Theme))
	final, err := ui.RunTest(ui.TestOptions{
		Card:        c,
		Styles:      styles,
		CommitDelay: cfg.GetCommitDelay(),
		ResetDelay:  cfg.GetResetDelay(),
		Notice:      notice,
	})
	if err != nil {
		return fmt.Errorf("test ui failed: %w", err)
	}

	if testCardPath != "" {
		if err := final.Card.Save(testCardPath); err != nil {
			return err
		}
		logger.Info("card saved", zap.String("path", testCardPath))
	}
	fmt.Fprintln(cmd.OutOrStdout(), ui.RenderCard(final, styles))
	return nil
}

// prepareCard loads or creates the card for a test run and applies --name.
// notice is empty unless the card would fail the card form's checks.
func prepareCard(path, name string, now time.Time) (c card.Card, notice string, err error) {
	c, err = loadOrNewCard(path, now)
	if err != nil {
		return card.Card{}, "", err
	}
	if name != "" {
		c.Name = name
	}
	if err := checkCard(c, now); err != nil {
		notice = "名帖有误: " + strings.ReplaceAll(err.Error(), "\n", "; ")
	}
	return c, notice, nil
}

// checkCard logs why c would be rejected by the card form. Callers keep
// rendering; unset fields show placeholders.
func checkCard(c card.Card, now time.Time) error {
	err := c.Validate(now)
	if err != nil {
		logging.Get(logging.CategoryCard).Warn("card is incomplete",
			zap.String("name", c.Name),
			zap.String("entry_date", c.EntryDate),
			zap.Error(err))
	}
	return err
}

// loadOrNewCard loads path, or returns a fresh card from config defaults when
// path is empty or does not exist yet.
func loadOrNewCard(path string, now time.Time) (card.Card, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return card.LoadFile(path)
		}
	}
	return card.New(cfg.Card.Gender, card.BorderStyle(cfg.Card.Border), now), nil
}
