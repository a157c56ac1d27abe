package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kjstillabower/weather-cli/internal/client"
	"github.com/kjstillabower/weather-cli/internal/models"
)

// WeatherProvider is what the shell needs from the service layer.
type WeatherProvider interface {
	CurrentWeather(ctx context.Context, city string) (models.WeatherRecord, bool, error)
	Forecast(ctx context.Context, city string) ([]models.WeatherRecord, error)
}

// Shell is the interactive surface: it reads comma-separated city names,
// fetches current conditions and the forecast for each, and prints
// formatted blocks to out. Fetch errors are reported and the loop
// continues; only "quit", EOF, or an interrupt end the session.
type Shell struct {
	svc    WeatherProvider
	in     io.Reader
	out    io.Writer
	logger *zap.Logger
}

func NewShell(svc WeatherProvider, in io.Reader, out io.Writer, logger *zap.Logger) *Shell {
	return &Shell{
		svc:    svc,
		in:     in,
		out:    out,
		logger: logger,
	}
}

// Run drives the read/dispatch/print loop until the user types "quit",
// input reaches EOF, or ctx is cancelled (interrupt). Stdin is read on a
// helper goroutine so cancellation can unblock the prompt; city lookups
// themselves run strictly one after another.
func (s *Shell) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, "Enter city names (separated by commas) or 'quit' to exit.")

	lines := make(chan string)
	scanErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)
	go func() {
		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		scanErr <- scanner.Err()
		close(lines)
	}()

	for {
		fmt.Fprint(s.out, "Cities: ")
		select {
		case <-ctx.Done():
			fmt.Fprintf(s.out, "\nExiting...\n")
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := <-scanErr; err != nil {
					return fmt.Errorf("read input: %w", err)
				}
				fmt.Fprintf(s.out, "\nExiting...\n")
				return nil
			}
			if s.handleLine(ctx, line) {
				return nil
			}
		}
	}
}

// handleLine processes one input line. Returns true when the user asked to quit.
func (s *Shell) handleLine(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if strings.EqualFold(line, "quit") {
		fmt.Fprintln(s.out, "Exiting...")
		return true
	}

	for _, city := range strings.Split(line, ",") {
		city = strings.TrimSpace(city)
		if city == "" {
			continue
		}
		if ctx.Err() != nil {
			return false
		}
		s.lookupCity(ctx, city)
	}
	return false
}

// lookupCity fetches and displays current weather and the forecast for one
// city. A failure on either call is reported to the user and ends this
// city's lookup only; the rest of the batch still runs.
func (s *Shell) lookupCity(ctx context.Context, city string) {
	corrID := uuid.NewString()
	ctx = client.WithCorrelationID(ctx, corrID)
	s.logger.Debug("city lookup", zap.String("city", city), zap.String("correlation_id", corrID))

	fmt.Fprintf(s.out, "\nFetching weather for %s...\n", city)

	current, found, err := s.svc.CurrentWeather(ctx, city)
	if err != nil {
		s.reportFetchError(ctx, err)
		return
	}
	if found {
		s.displayCurrent(current)
	} else {
		fmt.Fprintf(s.out, "City '%s' not found.\n", city)
	}

	forecast, err := s.svc.Forecast(ctx, city)
	if err != nil {
		s.reportFetchError(ctx, err)
		return
	}
	if len(forecast) > 0 {
		s.displayForecast(forecast)
	} else {
		fmt.Fprintf(s.out, "No forecast available for '%s'.\n", city)
	}
}

// reportFetchError prints a fetch failure to the user. A failure caused by
// an interrupt is not reported; the session ends with "Exiting..." from the
// main loop instead.
func (s *Shell) reportFetchError(ctx context.Context, err error) {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return
	}
	fmt.Fprintf(s.out, "Error: %v\n", err)
}
