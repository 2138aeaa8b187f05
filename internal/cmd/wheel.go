package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fadilmartias/life-wheel/internal/model"
	"github.com/fadilmartias/life-wheel/internal/wheel"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type wheelOptions struct {
	ratings   []string
	from      string
	out       string
	highlight int
	value     int
	empty     bool
	size      int
}

// ratingsFile is the YAML accepted by --from.
type ratingsFile struct {
	Ratings map[string]int `yaml:"ratings"`
}

// NewWheelCommand creates the 'lifewheel wheel' command
func NewWheelCommand() *cobra.Command {
	opts := &wheelOptions{}
	cmd := &cobra.Command{
		Use:   "wheel",
		Short: "Render a wheel PNG from ratings",
		Long: `Render the life wheel for a set of ratings.

Ratings come from repeated --rating flags, a YAML file, or both (flags win):

  lifewheel wheel --rating "Health=7" --rating "Romance=4" --out wheel.png
  lifewheel wheel --from ratings.yaml

ratings.yaml:
  ratings:
    School life: 3
    Finances: 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWheel(cmd, opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.ratings, "rating", nil, `category rating as "Name=N" (repeatable)`)
	cmd.Flags().StringVar(&opts.from, "from", "", "YAML file with a ratings mapping")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "life-wheel.png", "output PNG path")
	cmd.Flags().IntVar(&opts.highlight, "highlight", -1, "category index to highlight")
	cmd.Flags().IntVar(&opts.value, "value", -1, "live value for the highlighted category")
	cmd.Flags().BoolVar(&opts.empty, "empty", false, "draw the empty wheel")
	cmd.Flags().IntVar(&opts.size, "size", wheel.DefaultSize, "image width and height in pixels")

	return cmd
}

func runWheel(cmd *cobra.Command, opts *wheelOptions) error {
	ratings := map[string]int{}
	if opts.from != "" {
		fromFile, err := loadRatingsFile(opts.from)
		if err != nil {
			return err
		}
		for k, v := range fromFile {
			ratings[k] = v
		}
	}
	flagRatings, err := parseRatingFlags(opts.ratings)
	if err != nil {
		return err
	}
	for k, v := range flagRatings {
		ratings[k] = v
	}

	layout := wheel.Options{
		Categories: model.Categories,
		Ratings:    ratings,
		Empty:      opts.empty,
		Width:      opts.size,
		Height:     opts.size,
	}
	if opts.highlight >= 0 {
		category, ok := model.CategoryAt(opts.highlight)
		if !ok {
			return fmt.Errorf("--highlight must be between 0 and %d", len(model.Categories)-1)
		}
		value := opts.value
		if value < 0 {
			value = ratings[category]
		}
		if !model.ValidRating(value) {
			return fmt.Errorf("--value must be between %d and %d", model.MinRating, model.MaxRating)
		}
		layout.Live = &wheel.Live{Index: opts.highlight, Value: value}
	}

	f, err := os.Create(opts.out)
	if err != nil {
		return fmt.Errorf("create %s: %w", opts.out, err)
	}
	if err := wheel.RenderPNG(f, wheel.Layout(layout), 0); err != nil {
		f.Close()
		return fmt.Errorf("render wheel: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", opts.out, err)
	}

	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(cmd.OutOrStdout(), "%s wrote %s (%d ratings)\n", green("✓"), opts.out, len(ratings))
	return nil
}

// parseRatingFlags parses "Name=N" pairs. Names must be canonical categories.
func parseRatingFlags(values []string) (map[string]int, error) {
	out := make(map[string]int, len(values))
	for _, raw := range values {
		name, num, ok := strings.Cut(raw, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --rating %q: want Name=N", raw)
		}
		name = strings.TrimSpace(name)
		n, err := strconv.Atoi(strings.TrimSpace(num))
		if err != nil {
			return nil, fmt.Errorf("invalid --rating %q: %w", raw, err)
		}
		if err := checkRating(name, n); err != nil {
			return nil, err
		}
		out[name] = n
	}
	return out, nil
}

func loadRatingsFile(path string) (map[string]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ratings file: %w", err)
	}
	var file ratingsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse ratings file: %w", err)
	}
	for name, n := range file.Ratings {
		if err := checkRating(name, n); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return file.Ratings, nil
}

func checkRating(name string, n int) error {
	if !model.IsCategory(name) {
		return fmt.Errorf("unknown category %q", name)
	}
	if !model.ValidRating(n) {
		return fmt.Errorf("rating for %q must be between %d and %d", name, model.MinRating, model.MaxRating)
	}
	return nil
}
