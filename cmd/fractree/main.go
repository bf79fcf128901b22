package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/esimov/fractree"
	"github.com/esimov/fractree/utils"
	"golang.org/x/term"
)

const HelpBanner = `
┌─┐┬─┐┌─┐┌─┐┌┬┐┬─┐┌─┐┌─┐
├┤ ├┬┘├─┤│   │ ├┬┘├┤ ├┤
└  ┴└─┴ ┴└─┘ ┴ ┴└─└─┘└─┘

Procedural fractal tree image generator.
    Version: %s

`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

// result holds the relevant information about the generation process and the rendered image.
type result struct {
	path string
	err  error
}

// spinner used to instantiate and call the progress indicator.
var spinner *utils.Spinner

// Version indicates the current build version.
var Version string

var defaults = fractree.DefaultParams()

var (
	// Flags
	destination  = flag.String("out", pipeName, "Destination")
	canvasWidth  = flag.Int("width", defaults.CanvasWidth, "Canvas width")
	canvasHeight = flag.Int("height", defaults.CanvasHeight, "Canvas height")
	baseLength   = flag.Float64("length", defaults.BaseLength, "Trunk length")
	angle        = flag.Float64("angle", defaults.AngleVariation, "Branching angle in degrees")
	lengthFactor = flag.Float64("lfactor", defaults.LengthFactor, "Branch length decay per depth level")
	depth        = flag.Int("depth", defaults.Depth, "Maximum recursion depth")
	thickness    = flag.Float64("thickness", defaults.TrunkThickness, "Trunk thickness")
	thickFactor  = flag.Float64("tfactor", defaults.ThicknessFactor, "Branch thickness decay per depth level")
	randomness   = flag.Float64("rand", defaults.Randomness, "Branch angle jitter amount")
	downward     = flag.Bool("down", false, "Grow the tree downward")
	trunkColor   = flag.String("trunk", defaults.TrunkColor, "Trunk color (hex)")
	leafColors   = flag.String("leaves", strings.Join(defaults.LeafColors, ","), "Comma separated leaf color gradient (hex)")
	background   = flag.String("bg", defaults.BgColor, "Background color (hex)")
	bgImage      = flag.String("bg-image", "", "Backdrop image path or URL")
	blendMode    = flag.String("blend", "", "Blend mode applied over the backdrop (darken, lighten, multiply, screen, overlay)")
	seed         = flag.Int64("seed", 0, "Random seed (0 picks a time based seed)")
	scale        = flag.Int("scale", 2, "Supersampling factor")
	clamp        = flag.Bool("clamp", false, "Clamp out of range parameters instead of rejecting them")
	count        = flag.Int("count", 1, "Number of seed variations to render")
	workers      = flag.Int("conc", runtime.NumCPU(), "Number of images to render concurrently")
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	params := &fractree.Params{
		BaseLength:      *baseLength,
		AngleVariation:  *angle,
		LengthFactor:    *lengthFactor,
		Depth:           *depth,
		TrunkThickness:  *thickness,
		ThicknessFactor: *thickFactor,
		Randomness:      *randomness,
		GrowUpward:      !*downward,
		TrunkColor:      *trunkColor,
		LeafColors:      splitColors(*leafColors),
		BgColor:         *background,
		CanvasWidth:     *canvasWidth,
		CanvasHeight:    *canvasHeight,
	}
	if *clamp {
		params = params.Clamp()
	}
	if err := params.Validate(); err != nil {
		log.Fatal(utils.DecorateText(err.Error(), utils.ErrorMessage))
	}

	spinnerText := fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ FRACTREE", utils.StatusMessage),
		utils.DecorateText("is growing the tree...", utils.DefaultMessage))
	spinner = utils.NewSpinner(spinnerText, time.Millisecond*200, true)

	// Capture CTRL-C signal and restore the cursor visibility back.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalChan
		spinner.RestoreCursor()
		os.Exit(1)
	}()

	now := time.Now()

	if *count > 1 {
		renderBatch(params)
	} else {
		proc := &fractree.Processor{
			Params:    params,
			Seed:      *seed,
			Scale:     *scale,
			BgImage:   *bgImage,
			BlendMode: *blendMode,
		}
		err := renderTo(*destination, proc)
		printStatus(*destination, err)
	}

	fmt.Fprintf(os.Stderr, "\nExecution time: %s\n",
		utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
}

// renderBatch renders multiple seed variations of the same parameter set
// concurrently into the destination directory.
func renderBatch(params *fractree.Params) {
	if *destination == pipeName {
		log.Fatal(utils.DecorateText("please provide an output directory when rendering multiple variations", utils.ErrorMessage))
	}
	if _, err := os.Stat(*destination); err != nil {
		if err = os.Mkdir(*destination, 0755); err != nil {
			log.Fatalf("%s%s",
				utils.DecorateText("unable to create the output directory: ", utils.ErrorMessage),
				utils.DecorateText(err.Error(), utils.DefaultMessage),
			)
		}
	}

	// Limit the concurrently running workers to maxWorkers.
	if *workers <= 0 || *workers > maxWorkers {
		*workers = runtime.NumCPU()
	}

	// Every variation gets its own derived seed so a batch as a whole is
	// reproducible from the base seed.
	base := *seed
	if base == 0 {
		base = time.Now().UnixNano()
	}
	seedGen := rand.New(rand.NewSource(base))

	type job struct {
		path string
		seed int64
	}

	jobs := make(chan job)
	ch := make(chan result)

	var wg sync.WaitGroup
	wg.Add(*workers)
	for i := 0; i < *workers; i++ {
		go func() {
			defer wg.Done()
			for j := range jobs {
				proc := &fractree.Processor{
					Params:    params,
					Seed:      j.seed,
					Scale:     *scale,
					BgImage:   *bgImage,
					BlendMode: *blendMode,
				}
				ch <- result{path: j.path, err: renderTo(j.path, proc)}
			}
		}()
	}

	go func() {
		for i := 0; i < *count; i++ {
			fname := fmt.Sprintf("fractree_%03d.png", i)
			jobs <- job{
				path: filepath.Join(*destination, fname),
				seed: seedGen.Int63(),
			}
		}
		close(jobs)
	}()

	// Close the channel after the values are consumed.
	go func() {
		defer close(ch)
		wg.Wait()
	}()

	for res := range ch {
		printStatus(res.path, res.err)
	}
}

// renderTo runs the processor against the destination path and reports
// the rendering progress on the terminal.
func renderTo(out string, proc *fractree.Processor) error {
	dst, err := pathToFile(out)
	if err != nil {
		return err
	}
	if f, ok := dst.(*os.File); ok && f != os.Stdout {
		defer f.Close()
	}

	// Start the progress indicator.
	spinner.Start()
	err = proc.Process(dst)

	spinner.StopMsg = fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ FRACTREE", utils.StatusMessage),
		utils.DecorateText("is growing the tree... ✔", utils.DefaultMessage))

	// Stop the progress indicator.
	spinner.Stop()

	return err
}

// pathToFile converts the destination path to a writable file.
func pathToFile(out string) (io.Writer, error) {
	// Check if the destination is a pipe name or a regular file.
	if out == pipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return nil, errors.New("`-` should be used with a pipe for stdout")
		}
		return os.Stdout, nil
	}

	ext := filepath.Ext(out)
	validExtensions := []string{".png", ".jpg", ".jpeg", ".bmp"}
	if !utils.Contains(validExtensions, ext) {
		return nil, fmt.Errorf("%v file type not supported", ext)
	}

	dst, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("unable to create the destination file: %v", err)
	}
	return dst, nil
}

// printStatus displays the relevant information about the rendering process.
func printStatus(fname string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr,
			utils.DecorateText("\nError rendering the tree: %s", utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err.Error()), utils.DefaultMessage),
		)
		os.Exit(1)
	}
	if fname != pipeName {
		fmt.Fprintf(os.Stderr, "\nThe rendered image has been saved as: %s %s\n",
			utils.DecorateText(filepath.Base(fname), utils.SuccessMessage),
			utils.DefaultColor,
		)
	}
}

// splitColors parses the comma separated hex color list flag.
func splitColors(s string) []string {
	var colors []string
	for _, c := range strings.Split(s, ",") {
		if c = strings.TrimSpace(c); len(c) > 0 {
			colors = append(colors, c)
		}
	}
	return colors
}
