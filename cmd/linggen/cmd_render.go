package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"linggen/internal/aptitude"
	"linggen/internal/card"
	"linggen/internal/descriptor"
	"linggen/internal/formation"
	"linggen/internal/logging"
	"linggen/internal/scene"
	"linggen/internal/serial"
)

var (
	renderOutput   string
	renderSeed     uint64
	renderCardPath string
	galleryOutput  string
	serialDate     string
)

// parseCmd shows how a descriptor is classified
var parseCmd = &cobra.Command{
	Use:   "parse [descriptor]",
	Short: "Classify a descriptor and show its formation",
	Example: `  linggen parse "真灵根 (金、木、水)"
  linggen parse "隐灵根 (隐暗)"`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

// renderCmd writes the SVG emblem for one descriptor or card
var renderCmd = &cobra.Command{
	Use:   "render [descriptor]",
	Short: "Render the emblem of a descriptor as SVG",
	Long: `Renders the emblem scene for a descriptor, or for the descriptor stored
in a card file with --card. Animation timings are jittered; pass --seed for
reproducible output.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

// galleryCmd renders every row of the aptitude table
var galleryCmd = &cobra.Command{
	Use:   "gallery",
	Short: "Render every aptitude table row to an SVG file",
	Args:  cobra.NoArgs,
	RunE:  runGallery,
}

// serialCmd derives a card serial
var serialCmd = &cobra.Command{
	Use:   "serial [descriptor]",
	Short: "Derive a card serial number for a descriptor",
	Args:  cobra.ExactArgs(1),
	RunE:  runSerial,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "-", "Output file (- for stdout)")
	renderCmd.Flags().Uint64Var(&renderSeed, "seed", 0, "Seed for animation jitter (0 = random)")
	renderCmd.Flags().StringVar(&renderCardPath, "card", "", "Render the descriptor of this card file")

	galleryCmd.Flags().StringVarP(&galleryOutput, "output", "o", "", "Output directory (default: render.output_dir)")
	galleryCmd.Flags().Uint64Var(&renderSeed, "seed", 0, "Seed for animation jitter (0 = random)")

	serialCmd.Flags().StringVar(&serialDate, "date", "", "Entry date, YYYY-MM-DD (default: today)")
	serialCmd.Flags().Uint64Var(&renderSeed, "seed", 0, "Seed for the random suffix (0 = random)")
}

// newRand returns a PCG source for seed, or a randomly seeded one for 0.
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// classificationView is the printable form of a classification.
type classificationView struct {
	Source    string   `yaml:"source"`
	Root      string   `yaml:"root"`
	Elements  []string `yaml:"elements,omitempty"`
	Rare      string   `yaml:"rare,omitempty"`
	Veiled    bool     `yaml:"veiled,omitempty"`
	Formation string   `yaml:"formation"`
	Lore      string   `yaml:"lore"`
}

func newClassificationView(c descriptor.Classification) classificationView {
	v := classificationView{
		Source:    c.Source,
		Root:      c.Root.Label(),
		Veiled:    c.Veiled,
		Formation: formation.Select(c).String(),
		Lore:      aptitude.Describe(c.Source, ""),
	}
	for _, el := range c.Elements {
		v.Elements = append(v.Elements, el.Glyph())
	}
	if c.Rare != descriptor.RareNone {
		v.Rare = c.Rare.Glyph()
	}
	return v
}

func runParse(cmd *cobra.Command, args []string) error {
	c := descriptor.Parse(args[0])
	out, err := yaml.Marshal(newClassificationView(c))
	if err != nil {
		return fmt.Errorf("failed to marshal classification: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

func runRender(cmd *cobra.Command, args []string) error {
	var text string
	switch {
	case renderCardPath != "":
		c, err := card.LoadFile(renderCardPath)
		if err != nil {
			return err
		}
		_ = checkCard(c, time.Now())
		text = c.Descriptor
	case len(args) == 1:
		text = args[0]
	default:
		return fmt.Errorf("render needs a descriptor or --card")
	}

	s := formation.NewRenderer(newRand(renderSeed)).Render(descriptor.Parse(text))
	logging.Render("scene built for %s: %s", text, s.Formation)

	if renderOutput == "-" {
		return scene.EncodeSVG(cmd.OutOrStdout(), s)
	}
	if err := writeSVG(renderOutput, s); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s → %s (%s)\n", text, renderOutput, s.Formation)
	return nil
}

func writeSVG(path string, s scene.Scene) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := scene.EncodeSVG(f, s); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// galleryEntry is one rendered table row.
type galleryEntry struct {
	Index      int    `yaml:"index"`
	File       string `yaml:"file"`
	Descriptor string `yaml:"descriptor"`
	Formation  string `yaml:"formation"`
}

func runGallery(cmd *cobra.Command, args []string) error {
	dir := galleryOutput
	if dir == "" {
		dir = cfg.Render.OutputDir
	}
	entries, err := renderGallery(cmd.Context(), dir, aptitude.Pairs(), cfg.GetWorkers(), renderSeed)
	if err != nil {
		return err
	}

	index, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal gallery index: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "index.yaml"), index, 0644); err != nil {
		return fmt.Errorf("failed to write gallery index: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "rendered %d emblems to %s\n", len(entries), dir)
	return nil
}

func galleryName(i int) string {
	return fmt.Sprintf("%02d.svg", i+1)
}

// renderGallery renders every pair to dir/NN.svg on up to workers goroutines.
// Each row draws from its own source so output is reproducible per seed
// regardless of scheduling.
func renderGallery(ctx context.Context, dir string, pairs []aptitude.Pair, workers int, seed uint64) ([]galleryEntry, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	log := logging.Get(logging.CategoryRender)
	entries := make([]galleryEntry, len(pairs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	start := time.Now()
	for i, p := range pairs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rowSeed := seed
			if rowSeed != 0 {
				rowSeed += uint64(i)
			}
			s := formation.NewRenderer(newRand(rowSeed)).Render(descriptor.Parse(p.Descriptor))
			name := galleryName(i)
			if err := writeSVG(filepath.Join(dir, name), s); err != nil {
				return err
			}
			entries[i] = galleryEntry{Index: i + 1, File: name, Descriptor: p.Descriptor, Formation: s.Formation}
			log.Debug("gallery row rendered", zap.Int("index", i+1), zap.String("formation", s.Formation))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	log.Info("gallery rendered", zap.Int("rows", len(pairs)), zap.Duration("took", time.Since(start)))
	return entries, nil
}

func runSerial(cmd *cobra.Command, args []string) error {
	date := serialDate
	if date == "" {
		date = time.Now().Format(card.DateLayout)
	} else if _, err := time.Parse(card.DateLayout, date); err != nil {
		return fmt.Errorf("invalid --date %q: %w", date, err)
	}
	id := serial.Derive(descriptor.Parse(args[0]), date, newRand(renderSeed))
	_, err := fmt.Fprintln(cmd.OutOrStdout(), id)
	return err
}
