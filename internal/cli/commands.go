package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/checklist/internal/checklist"
	"github.com/idilsaglam/checklist/internal/model"
	"github.com/idilsaglam/checklist/internal/tui"
	"github.com/idilsaglam/checklist/internal/ui"
)

func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usagef("usage: checklist %s", usage)
		}
		return nil
	}
}

// -------------- grid commands ----------------

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "show",
		Aliases: []string{"ls"},
		Short:   "Print the roster grid",
		GroupID: "grid",
		Args:    exactArgs(0, "show"),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.session()
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, ui.Grid(s))
			lines := []string{ui.SummaryLine(s), ""}
			lines = append(lines, ui.ItemLines(s)...)
			lines = append(lines, "", ui.C(ui.Current().Muted, "Tip: toggle with `checklist toggle attend 3`"))
			ui.Panel(a.out, lines)
			return nil
		},
	}
}

func newSummaryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "summary",
		Short:   "Print the attendance count as `n / 30`",
		GroupID: "grid",
		Args:    exactArgs(0, "summary"),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.session()
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, s.Summary().String())
			return nil
		},
	}
}

func newSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "set <item> <row> <on|off>",
		Short:   "Set one checkbox",
		GroupID: "grid",
		Args:    exactArgs(3, "set <item> <row> <on|off>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			on, err := parseOnOff(args[2])
			if err != nil {
				return err
			}
			s, row, err := a.cell(args[0], args[1])
			if err != nil {
				return err
			}
			if !s.SetValue(args[0], row, on) {
				ui.OK(a.out, model.CellName(args[0], row)+" unchanged")
				return nil
			}
			ui.OK(a.out, fmt.Sprintf("%s %s", model.CellName(args[0], row), onOff(on)))
			return nil
		},
	}
}

func newToggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <item> <row>",
		Short:   "Flip one checkbox",
		GroupID: "grid",
		Args:    exactArgs(2, "toggle <item> <row>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, row, err := a.cell(args[0], args[1])
			if err != nil {
				return err
			}
			s.Toggle(args[0], row)
			ui.OK(a.out, fmt.Sprintf("%s %s", model.CellName(args[0], row), onOff(s.Value(args[0], row))))
			return nil
		},
	}
}

func newBulkCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "bulk <item> <on|off>",
		Short:   "Check or clear a whole column",
		GroupID: "grid",
		Args:    exactArgs(2, "bulk <item> <on|off>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			on, err := parseOnOff(args[1])
			if err != nil {
				return err
			}
			s, err := a.item(args[0])
			if err != nil {
				return err
			}
			n := len(s.BulkSet(args[0], on))
			ui.OK(a.out, fmt.Sprintf("%s: %d rows switched %s", args[0], n, onOff(on)))
			return nil
		},
	}
}

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "tui",
		Short:   "Edit the roster interactively",
		GroupID: "grid",
		Args:    exactArgs(0, "tui"),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.session()
			if err != nil {
				return err
			}
			return tui.Run(s)
		},
	}
}

// -------------- item commands ----------------

func newItemsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "items",
		Short:   "List tracked items",
		GroupID: "items",
		Args:    exactArgs(0, "items"),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.session()
			if err != nil {
				return err
			}
			ui.Panel(a.out, ui.ItemLines(s))
			return nil
		},
	}
}

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "add [label...]",
		Short:   "Add a tracked item (prompts when no label is given)",
		GroupID: "items",
		Example: `  checklist add Quiz
  checklist add "Field trip form"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			label := strings.Join(args, " ")
			if len(args) == 0 {
				var err error
				if label, err = a.prompt(); err != nil {
					if errors.Is(err, huh.ErrUserAborted) {
						return usageError{}
					}
					return err
				}
			}
			s, err := a.session()
			if err != nil {
				return err
			}
			it, err := s.AddItem(label)
			if err != nil {
				return fmt.Errorf("add: %w", err)
			}
			ui.OK(a.out, fmt.Sprintf("added %s (key %s)", it.Label, it.Key))
			return nil
		},
	}
}

func newRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <item>",
		Short:   "Remove a tracked item and its checkboxes",
		GroupID: "items",
		Args:    exactArgs(1, "rm <item>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.session()
			if err != nil {
				return err
			}
			if err := s.RemoveItem(args[0]); err != nil {
				return fmt.Errorf("rm: %w", err)
			}
			ui.OK(a.out, "removed "+args[0])
			return nil
		},
	}
}

// -------------- helpers --------------

func promptLabel() (string, error) {
	var label string
	err := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("New item").
			Placeholder("e.g. Quiz").
			Value(&label).
			Validate(func(s string) error {
				if model.KeyFromLabel(s) == "" {
					return errors.New("label cannot be empty")
				}
				return nil
			}),
	)).Run()
	return label, err
}

func (a *app) item(key string) (*checklist.Session, error) {
	s, err := a.session()
	if err != nil {
		return nil, err
	}
	if _, ok := s.Item(key); !ok {
		return nil, fmt.Errorf("no item %q (see `checklist items`)", key)
	}
	return s, nil
}

func (a *app) cell(key, rowArg string) (*checklist.Session, int, error) {
	row, err := strconv.Atoi(rowArg)
	if err != nil {
		return nil, 0, usagef("row: not a number: %s", rowArg)
	}
	if !model.ValidRow(row) {
		return nil, 0, usagef("row out of range: want 1-%d, got %d", model.NumRows, row)
	}
	s, err := a.item(key)
	if err != nil {
		return nil, 0, err
	}
	return s, row, nil
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "yes", "1", "x":
		return true, nil
	case "off", "false", "no", "0", "-":
		return false, nil
	}
	return false, usagef("want on or off, got %q", s)
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
