// Command shrinkwrap runs the Shrink-Wrap phase retrieval engine against a
// measured intensity image on disk, the same top-level CLI shape as the
// cmd/mrislicesto3d/main.go: flag-parsed options, a banner, staged
// progress printing, and a saved output file.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"time"

	"gonum.org/v1/gonum/mat"

	"shrinkwrap/pkg/config"
	"shrinkwrap/pkg/observer"
	"shrinkwrap/pkg/shrinkwrap"
)

func main() {
	inputPath := flag.String("input", "", "Path to the measured intensity image (grayscale PNG)")
	outputPath := flag.String("output", "reconstruction.png", "Path to write the reconstructed image")
	configPath := flag.String("config", "", "Optional path to a YAML config file")
	flag.Parse()

	if *inputPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	fmt.Println("================================")
	fmt.Println("SHRINK-WRAP PHASELESS IMAGE RECONSTRUCTION")
	fmt.Println("================================")

	intensity, width, height, err := loadIntensityPNG(*inputPath)
	if err != nil {
		log.Fatalf("Failed to load input image: %v", err)
	}

	params := shrinkwrap.Params{
		NCycles:                    cfg.Reconstruction.NCycles,
		TargetError:                cfg.Reconstruction.TargetError,
		Beta:                       cfg.Reconstruction.Beta,
		RIntensityCutOffAutoCorrel: cfg.Reconstruction.RIntensityCutOffAutoCorrel,
		RIntensityCutOff:           cfg.Reconstruction.RIntensityCutOff,
		Sigma0:                     cfg.Reconstruction.Sigma0,
		SigmaChange:                cfg.Reconstruction.SigmaChange,
		NHioCycles:                 cfg.Reconstruction.NHioCycles,
	}

	var obs observer.Observer = observer.NoopObserver{}
	if cfg.Observer.Verbose {
		obs = observer.NewLogObserver(os.Stdout, params.Defaulted().NCycles)
	}
	if cfg.Observer.DumpIntermediateImages {
		pngObs, err := observer.NewPNGObserver(cfg.Observer.OutputDir)
		if err != nil {
			log.Fatalf("Failed to create debug observer: %v", err)
		}
		if cfg.Observer.Verbose {
			obs = multiObserver{obs, pngObs}
		} else {
			obs = pngObs
		}
	}

	fmt.Printf("Reconstructing %dx%d image...\n", width, height)
	startTime := time.Now()
	result, status := shrinkwrap.Reconstruct(intensity, width, height, params, obs)
	elapsed := time.Since(startTime)

	if status != shrinkwrap.StatusOK {
		log.Fatalf("Reconstruction failed with status %d", status)
	}

	fmt.Printf("\nReconstruction completed in %.2f seconds\n", elapsed.Seconds())
	fmt.Printf("Cycles run: %d\n", result.CyclesRun)
	fmt.Printf("Final error: %.6g\n", result.FinalError)
	fmt.Printf("Converged: %v\n", result.Converged)

	if err := saveIntensityPNG(*outputPath, result.Image, width, height); err != nil {
		log.Fatalf("Failed to write output image: %v", err)
	}
	fmt.Printf("Output saved to: %s\n", *outputPath)
}

// multiObserver fans out every notification to each wrapped observer, used
// when both progress logging and debug image dumps are enabled.
type multiObserver []observer.Observer

func (m multiObserver) OnCycleBegin(cycle int, sigma float64) {
	for _, o := range m {
		o.OnCycleBegin(cycle, sigma)
	}
}

func (m multiObserver) OnHioStep(cycle, hioStep int, maskedErr float64) {
	for _, o := range m {
		o.OnHioStep(cycle, hioStep, maskedErr)
	}
}

func (m multiObserver) OnCycleEnd(cycle int, maskedErr float64, mask, estimate *mat.Dense) {
	for _, o := range m {
		o.OnCycleEnd(cycle, maskedErr, mask, estimate)
	}
}

// loadIntensityPNG reads a grayscale PNG and returns its pixel values as a
// row-major, non-negative float32 intensity array normalized to [0,1].
func loadIntensityPNG(path string) ([]float32, int, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, err
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("decoding PNG: %w", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	intensity := make([]float32, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			gray := color.Gray16Model.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray16)
			intensity[y*width+x] = float32(gray.Y) / 65535
		}
	}

	return intensity, width, height, nil
}

// saveIntensityPNG writes a row-major float32 image as a 16-bit grayscale
// PNG, scaling by the image's own maximum so the output is viewable
// regardless of the reconstruction's absolute amplitude.
func saveIntensityPNG(path string, data []float32, width, height int) error {
	maxVal := float32(0)
	for _, v := range data {
		if v > maxVal {
			maxVal = v
		} else if -v > maxVal {
			maxVal = -v
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	img := image.NewGray16(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := data[y*width+x] / maxVal
			if v < 0 {
				v = 0
			} else if v > 1 {
				v = 1
			}
			img.SetGray16(x, y, color.Gray16{Y: uint16(v * 65535)})
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}
