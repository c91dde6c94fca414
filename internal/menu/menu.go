// Package menu is the text interface of the plate shop. It reads operator
// input line by line and dispatches to the shop.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"plate_sales/internal/shop"
)

type handlerFunc func() error

type entry struct {
	label   string
	handler handlerFunc
}

// Menu holds the shop and the operator terminal.
type Menu struct {
	shop     *shop.Shop
	in       *bufio.Scanner
	out      io.Writer
	logger   *zap.Logger
	currency string
	clear    bool
	entries  []entry
}

// Option customizes a Menu.
type Option func(*Menu)

// WithCurrency sets the symbol printed in front of prices.
func WithCurrency(symbol string) Option {
	return func(m *Menu) {
		m.currency = symbol
	}
}

// New creates a Menu reading from in and writing to out. The screen is
// cleared between pages only when out is a terminal.
func New(s *shop.Shop, in io.Reader, out io.Writer, logger *zap.Logger, opts ...Option) *Menu {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}

	m := &Menu{
		shop:     s,
		in:       bufio.NewScanner(in),
		out:      out,
		logger:   logger,
		currency: "$",
		clear:    isTerminal(out),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.entries = []entry{
		{"My Profile", m.handleProfile},
		{"Register", m.handleRegister},
		{"Create New User", m.handleCreateUser},
		{"Users List", m.handleListUsers},
		{"View all license plates", m.handleListPlates},
		{"Add a new license plate", m.handleAddPlate},
		{"Edit a license plate", m.handleEditPlate},
		{"Delete a license plate", m.handleDeletePlate},
		{"Record a sale", m.handleRecordSale},
		{"View sales statistics", m.handleStatistics},
	}
	return m
}

// Run shows the main menu until the operator exits, the input ends or ctx
// is cancelled.
func (m *Menu) Run(ctx context.Context) error {
	exitChoice := fmt.Sprint(len(m.entries) + 1)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		m.clearScreen()
		m.println("===== License Plate Sales System =====")
		for i, e := range m.entries {
			m.printf("%d. %s\n", i+1, e.label)
		}
		m.printf("%s or q. Exit\n", exitChoice)
		m.println("======================================")

		choice, err := m.prompt("Enter your choice: ")
		if err != nil {
			return endOfInput(err)
		}

		if choice == exitChoice || choice == "q" {
			m.println("Exiting... Goodbye!")
			return nil
		}

		handler := m.lookup(choice)
		if handler == nil {
			m.println("Invalid choice! Please try again.")
			if err := m.pause("Press Enter to continue..."); err != nil {
				return endOfInput(err)
			}
			continue
		}

		m.clearScreen()
		err = handler()
		switch {
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			m.logger.Warn("menu action failed", zap.String("choice", choice), zap.Error(err))
			m.println(describe(err))
		}
		if err := m.pause("\nPress Enter to return to the main menu..."); err != nil {
			return endOfInput(err)
		}
	}
}

func (m *Menu) lookup(choice string) handlerFunc {
	for i, e := range m.entries {
		if choice == fmt.Sprint(i+1) {
			return e.handler
		}
	}
	return nil
}

// prompt prints label and returns the next trimmed input line.
func (m *Menu) prompt(label string) (string, error) {
	m.printf("%s", label)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		m.println("")
		return "", io.EOF
	}
	return strings.TrimSpace(m.in.Text()), nil
}

// endOfInput treats io.EOF as the operator leaving and keeps any other
// read error.
func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (m *Menu) pause(label string) error {
	_, err := m.prompt(label)
	return err
}

func (m *Menu) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}

func (m *Menu) println(s string) {
	fmt.Fprintln(m.out, s)
}

func (m *Menu) clearScreen() {
	if m.clear {
		m.printf("\033[H\033[2J")
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
