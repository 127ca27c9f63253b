package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"

	"github.com/rmera/orbitraj"
	"github.com/rmera/orbitraj/colors"
	"github.com/rmera/orbitraj/cube"
	"github.com/rmera/orbitraj/histo"
	"github.com/rmera/orbitraj/movie"
	"github.com/rmera/orbitraj/multiwfn"
	"github.com/rmera/orbitraj/volume"
	"github.com/rmera/orbitraj/xyz"
)

func handleConvert(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	config := configFlag(fs)
	workdir := fs.String("workdir", "", "Directory where Multiwfn runs (default: current directory)")
	geometry := fs.Bool("geometry", false, "Also export the geometry of each file as PDB")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("%w: no files given", errUsage)
	}
	cfg, err := orbitraj.LoadConfig(*config)
	if err != nil {
		return err
	}
	H := multiwfn.NewHandleFromConfig(cfg.Multiwfn)
	H.SetWorkDir(*workdir)
	if !*geometry {
		results, err := H.ConvertAll(ctx, fs.Args())
		for i, r := range results {
			if r != "" {
				fmt.Fprintf(out, "%s -> %s\n", fs.Arg(i), r)
			}
		}
		return err
	}
	failures := &orbitraj.BatchError{Op: "convert"}
	for _, p := range fs.Args() {
		cub, pdb, err := H.ConvertWithGeometry(ctx, p)
		if err != nil {
			failures.Add(p, err)
			continue
		}
		fmt.Fprintf(out, "%s -> %s %s\n", p, cub, pdb)
	}
	return failures.OrNil()
}

// openAll opens the cube files as volumes with surfaces at the given levels.
func openAll(paths []string, cfg *orbitraj.Config, levels []float64) ([]orbitraj.Volume, error) {
	O := volume.NewOpener(cfg.RGBA)
	vols := make([]orbitraj.Volume, 0, len(paths))
	for i, p := range paths {
		v, err := O.Open(p, cfg.ModelIDBase+i)
		if err != nil {
			for _, o := range vols {
				o.Close()
			}
			return nil, err
		}
		vols = append(vols, v)
	}
	movie.NewStyler(cfg).SetIsosurface(vols, levels...)
	for _, v := range vols {
		v.Show()
	}
	return vols, nil
}

func handleColorMap(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("colormap", flag.ContinueOnError)
	config := configFlag(fs)
	pal := fs.String("palette", "", "Palette name or literal colors (default: from the configuration)")
	alpha := fs.Float64("alpha", colors.NoAlpha, "Alpha for all colors, in [0,1]")
	mask := fs.String("mask", "", "gradient or volume (default: from the configuration)")
	level := fs.Float64("level", math.NaN(), "Isosurface level (default: from the configuration)")
	bar := fs.String("colorbar", "", "Write a PNG color bar to this file")
	vertical := fs.Bool("vertical", false, "Vertical color bar")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("%w: no cube files given", errUsage)
	}
	cfg, err := orbitraj.LoadConfig(*config)
	if err != nil {
		return err
	}
	if *pal == "" {
		*pal = cfg.Palette
	}
	if *mask == "" {
		*mask = cfg.MaskKind
	}
	var levels []float64
	if !math.IsNaN(*level) {
		levels = []float64{0, *level}
	}
	p, err := colors.ParsePalette(*pal)
	if err != nil {
		return err
	}
	vols, err := openAll(fs.Args(), cfg, levels)
	if err != nil {
		return err
	}
	defer func() {
		for _, v := range vols {
			v.Close()
		}
	}()
	cm, err := colors.Unify(vols, nil, p, *alpha, *mask)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "# %d volumes, range %v\n", len(vols), cm.Range())
	for _, e := range cm.Entries {
		fmt.Fprintf(out, "%14.6g  %.3f %.3f %.3f %.3f\n", e.Value, e.Color[0], e.Color[1], e.Color[2], e.Color[3])
	}
	if *bar != "" {
		if err := colors.ColorBar(cm, *bar, *vertical); err != nil {
			return err
		}
		fmt.Fprintf(out, "# color bar written to %s\n", *bar)
	}
	return nil
}

// cubeInfo is what info -json prints for each file.
type cubeInfo struct {
	Path   string      `json:"path"`
	Points [3]int      `json:"points"`
	Units  string      `json:"units"`
	Atoms  int         `json:"atoms"`
	Range  [2]float64  `json:"range"`
	Mean   float64     `json:"mean"`
	Std    float64     `json:"std"`
	Level  float64     `json:"suggested_level"`
	Histo  *histo.Data `json:"histogram"`
}

func handleInfo(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	bins := fs.Int("bins", 10, "Number of histogram bins")
	fraction := fs.Float64("fraction", 0.99, "Suggest a level with this fraction of the values below it")
	asJSON := fs.Bool("json", false, "Print one JSON object per file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("%w: no cube files given", errUsage)
	}
	var errs []error
	enc := json.NewEncoder(out)
	for _, p := range fs.Args() {
		G, err := cube.Read(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		mean, std := G.Stats()
		units := "Bohr"
		if G.Angstrom {
			units = "Angstrom"
		}
		if *asJSON {
			r := G.ValueRange()
			err := enc.Encode(cubeInfo{
				Path:   p,
				Points: G.N,
				Units:  units,
				Atoms:  G.NAtoms(),
				Range:  [2]float64{r.Lo, r.Hi},
				Mean:   mean,
				Std:    std,
				Level:  histo.SuggestLevel(G.Values, *fraction),
				Histo:  histo.FromValues(G.Values, *bins),
			})
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", p, err))
			}
			continue
		}
		fmt.Fprintf(out, "%s\n  %s\n  %s\n", p, G.Comments[0], G.Comments[1])
		fmt.Fprintf(out, "  points %d x %d x %d (%s), %d atoms\n", G.N[0], G.N[1], G.N[2], units, G.NAtoms())
		if len(G.Orbitals) > 0 {
			fmt.Fprintf(out, "  orbitals %v (only the first one was read)\n", G.Orbitals)
		}
		fmt.Fprintf(out, "  range %v, mean %.6g, std %.6g\n", G.ValueRange(), mean, std)
		fmt.Fprintf(out, "  suggested level %.4g\n", histo.SuggestLevel(G.Values, *fraction))
		fmt.Fprintln(out, histo.FromValues(G.Values, *bins).String())
	}
	return errors.Join(errs...)
}

func handlePlay(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	config := configFlag(fs)
	traj := fs.String("traj", "", "XYZ trajectory (required)")
	delay := fs.Duration("delay", 0, "Time between frames")
	loops := fs.Int("loops", 1, "Times to play the trajectory")
	level := fs.Float64("level", math.NaN(), "Isosurface level (default: from the configuration)")
	alpha := fs.Float64("alpha", math.NaN(), "Surface opacity, in [0,1] (default: from the configuration)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *traj == "" {
		return fmt.Errorf("%w: -traj is required", errUsage)
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("%w: no cube files given", errUsage)
	}
	cfg, err := orbitraj.LoadConfig(*config)
	if err != nil {
		return err
	}
	T, err := xyz.Read(*traj)
	if err != nil {
		return err
	}
	C := movie.NewController(T, volume.NewOpener(cfg.RGBA), multiwfn.NewHandleFromConfig(cfg.Multiwfn), cfg)
	P := movie.NewPlayer(T)
	H := C.Attach(P)
	defer H.Destroy()
	if err := C.Load(ctx, fs.Args()); err != nil {
		return err
	}
	if !math.IsNaN(*level) {
		a := cfg.LoadAlpha
		if !math.IsNaN(*alpha) {
			a = *alpha
		}
		if err := C.Reconfigure(*level, a); err != nil {
			return err
		}
	} else if !math.IsNaN(*alpha) {
		if err := C.SetOpacity(*alpha); err != nil {
			return err
		}
	}
	fmt.Fprintf(out, "# %s: %d frames, session %s, colors in %v\n", T.Name(), T.Len(), C.Session(), C.ColorMap().Range())
	P.OnFrame = func(n int) {
		fmt.Fprintf(out, "frame %d: %s\n", n, fs.Arg(n-1))
	}
	for i := 0; i < *loops; i++ {
		if err := movie.Play(ctx, H, 1, T.Len(), 1, *delay); err != nil {
			return err
		}
	}
	vols := C.Volumes()
	for i, v := range vols {
		if v.Shown() {
			fmt.Fprintf(out, "# shown: frame %d, model %d, %s\n", i+1, v.ModelID(), v.Name())
		}
	}
	return nil
}

func handleCom2XYZ(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("com2xyz", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	failures := &orbitraj.BatchError{Op: "com2xyz"}
	for _, p := range fs.Args() {
		o, err := xyz.ComFileToXYZ(p)
		if err != nil {
			failures.Add(p, err)
			continue
		}
		fmt.Fprintf(out, "%s -> %s\n", p, o)
	}
	return failures.OrNil()
}
