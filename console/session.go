package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"passenger-stats/models"
	"passenger-stats/services"
	"passenger-stats/storage"
	"passenger-stats/utils"
)

var queryRegexp = regexp.MustCompile(`^\d{4}(-Q[1-4]|-(0[1-9]|1[0-2])|-W(0[1-9]|[1-4]\d|5[0-3]))?$`)

// ValidQuery reports whether s is one of the accepted period shapes:
// YYYY, YYYY-QN (N 1-4), YYYY-MM (01-12) or YYYY-WNN (01-53).
func ValidQuery(s string) bool {
	return queryRegexp.MatchString(s)
}

// Analyzer is what a Session needs from the aggregation layer.
type Analyzer interface {
	Analyze(period string) *models.AnalysisResult
	Coverage() models.Coverage
}

// Session drives the interactive query loop over injected input and output.
type Session struct {
	id       string
	in       io.Reader
	out      io.Writer
	analyzer Analyzer
	writers  []storage.ResultWriter
	logger   *utils.Logger
}

// NewSession creates a Session. Every answered query is also handed to writers.
func NewSession(in io.Reader, out io.Writer, analyzer Analyzer, logger *utils.Logger, writers ...storage.ResultWriter) *Session {
	id := uuid.New().String()
	return &Session{
		id:       id,
		in:       in,
		out:      out,
		analyzer: analyzer,
		writers:  writers,
		logger:   logger.WithField("session_id", id),
	}
}

// ID returns the session's correlation id.
func (s *Session) ID() string { return s.id }

// Run reads queries line by line until "exit", end of input, or ctx is done.
func (s *Session) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	s.logger.Info("[session] started")
	coverage := s.analyzer.Coverage()
	queries := 0

	for {
		s.printMenu(coverage)

		var line string
		select {
		case <-ctx.Done():
			s.logger.Info("[session] cancelled after %d queries", queries)
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				s.logger.Info("[session] input closed after %d queries", queries)
				select {
				case err := <-readErr:
					if err != nil {
						return fmt.Errorf("session: read input: %w", err)
					}
				default:
				}
				return nil
			}
			line = strings.TrimSpace(l)
		}

		if strings.EqualFold(line, "exit") {
			fmt.Fprintln(s.out, "Exiting.")
			s.logger.Info("[session] exit requested after %d queries", queries)
			return nil
		}

		if !ValidQuery(line) {
			s.logger.Debug("[session] rejected query %q", line)
			s.printHelp()
			continue
		}

		result := s.analyzer.Analyze(line)
		queries++
		fmt.Fprintf(s.out, "\nAnalysis result:\n%s\n", services.Format(result))
		s.export(result)
	}
}

func (s *Session) export(result *models.AnalysisResult) {
	for _, w := range s.writers {
		if err := w.WriteResults([]*models.AnalysisResult{result}); err != nil {
			s.logger.WithError(err).Error("[session] export of %s failed", result.Period)
		}
	}
}

func (s *Session) printMenu(c models.Coverage) {
	sep := strings.Repeat("─", 46)
	fmt.Fprintf(s.out, "\n%s\n", sep)
	fmt.Fprintln(s.out, "Enter a period (year, quarter, month or week),")
	fmt.Fprintln(s.out, "or 'exit' to quit.")
	fmt.Fprintln(s.out, sep)
	writeFormats(s.out)
	fmt.Fprintf(s.out, "Data set: %s\n", services.FormatCoverage(c))
	fmt.Fprintln(s.out, sep)
}

func (s *Session) printHelp() {
	fmt.Fprintln(s.out, "Invalid input. Please use one of the following formats:")
	writeFormats(s.out)
}

func writeFormats(w io.Writer) {
	fmt.Fprintln(w, "- Year:    YYYY     (e.g. 2020)")
	fmt.Fprintln(w, "- Quarter: YYYY-QN  (e.g. 2020-Q1)")
	fmt.Fprintln(w, "- Month:   YYYY-MM  (e.g. 2020-02)")
	fmt.Fprintln(w, "- Week:    YYYY-WNN (e.g. 2020-W06)")
}
