package main

import (
	"bufio"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	flagData       string
	flagWidth      int
	flagHeight     int
	flagFullscreen bool
	flagStdin      bool
	flagVehicles   []string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "attitude-hud",
		Short: "Attitude HUD - pitch gauge overlay for tracked vehicles",
		Long: `Attitude HUD shows a pitch gauge while the player flies a gyrocopter.
The gauge is configured at runtime with the attui console command
(open the console with the backtick key, or pass --stdin).`,
		SilenceUsage: true,
		RunE:         run,
	}

	rootCmd.Flags().StringVar(&flagData, "data", ".", "Data directory holding Mods/AttitudeIndicator/config.xml")
	rootCmd.Flags().IntVar(&flagWidth, "width", 1024, "Window width")
	rootCmd.Flags().IntVar(&flagHeight, "height", 600, "Window height")
	rootCmd.Flags().BoolVar(&flagFullscreen, "fullscreen", false, "Start in fullscreen mode")
	rootCmd.Flags().BoolVar(&flagStdin, "stdin", false, "Also read console commands from stdin")
	rootCmd.Flags().StringSliceVar(&flagVehicles, "vehicle", nil, "Extra vehicle class names to spawn")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	log.Println("Attitude HUD")

	opts := Options{
		DataDir:    flagData,
		Width:      flagWidth,
		Height:     flagHeight,
		Fullscreen: flagFullscreen,
		Vehicles:   flagVehicles,
	}
	if flagStdin {
		opts.Stdout = os.Stdout
	}

	app, err := NewApp(opts)
	if err != nil {
		return err
	}

	if flagStdin {
		go readLines(app.Lines())
	}

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down...")
		os.Exit(0)
	}()

	return app.Run()
}

// readLines forwards stdin lines to the app until EOF.
func readLines(out chan<- string) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		out <- scanner.Text()
	}
	if err := scanner.Err(); err != nil {
		log.Printf("stdin: %v", err)
	}
}
