package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/picogrid/cosim-input/pkg/editor"
	"github.com/picogrid/cosim-input/pkg/logger"
	"github.com/picogrid/cosim-input/pkg/models"
	"github.com/picogrid/cosim-input/pkg/regions"
	"github.com/picogrid/cosim-input/pkg/session"
	"github.com/picogrid/cosim-input/pkg/store"
	"github.com/picogrid/cosim-input/pkg/utils"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Edit a configuration interactively",
	Long: `Open an editing session. Pick a component of the power system from the
menu (or click the diagram by coordinates), edit its values, then save the
configuration under its name or hand it to a simulation.

With COSIM_SKIP_PROMPTS=true the shell runs once through every editor using
COSIM_<FIELD> overrides, saves when a name is set, and prints the result.`,
	RunE: runShell,
}

const (
	menuSettings = "Settings"
	menuWind     = "Wind turbines"
	menuSolar    = "Solar arrays"
	menuEV       = "Electric vehicles"
	menuClick    = "Click diagram (x, y)"
	menuSave     = "Save configuration"
	menuLoad     = "Load configuration"
	menuDelete   = "Delete configuration"
	menuSaved    = "Saved configurations"
	menuShow     = "Show configuration"
	menuRun      = "Run simulation"
	menuQuit     = "Quit"
)

var menuTargets = map[string]session.Target{
	menuSettings: session.TargetSettings,
	menuWind:     session.TargetWind,
	menuSolar:    session.TargetSolar,
	menuEV:       session.TargetEV,
}

func runShell(_ *cobra.Command, _ []string) error {
	sess := session.New(sessionLogger())

	if utils.SkipPrompts() {
		return batchShell(sess)
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("shell needs an interactive terminal (set %s=true for a batch run)", utils.SkipPromptsEnv)
	}

	logger.LogSection("Co-simulation input composer")
	for {
		choice, err := selectMenu(sess)
		if err != nil {
			if errors.Is(err, terminal.InterruptErr) {
				return nil
			}
			return err
		}
		if choice == menuQuit {
			return nil
		}

		if err := handleMenu(sess, choice); err != nil {
			if errors.Is(err, terminal.InterruptErr) {
				logger.Info("Cancelled")
				continue
			}
			logger.Error(logger.IconError + " " + err.Error())
		}
	}
}

func selectMenu(sess *session.Session) (string, error) {
	message := "What would you like to do?"
	if current := sess.Configs().Current(); current != "" {
		message = fmt.Sprintf("[%s] %s", current, message)
	}

	var choice string
	err := survey.AskOne(&survey.Select{
		Message: message,
		Options: []string{
			menuSettings, menuWind, menuSolar, menuEV, menuClick,
			menuSave, menuLoad, menuDelete, menuSaved,
			menuShow, menuRun, menuQuit,
		},
		PageSize: 12,
	}, &choice)
	return choice, err
}

func handleMenu(sess *session.Session, choice string) error {
	if target, ok := menuTargets[choice]; ok {
		return openEditor(sess, target)
	}

	switch choice {
	case menuClick:
		return clickDiagram(sess)
	case menuSave:
		return saveConfiguration(sess)
	case menuLoad:
		return loadConfiguration(sess)
	case menuDelete:
		return deleteConfiguration(sess)
	case menuSaved:
		showSaved(sess)
		return nil
	case menuShow:
		return showConfiguration(sess)
	case menuRun:
		name, err := selectSimulation(nil)
		if err != nil {
			return err
		}
		return simulate(sess, name)
	default:
		return fmt.Errorf("unknown action %q", choice)
	}
}

// openEditor runs the form for target and commits or discards it
func openEditor(sess *session.Session, target session.Target) error {
	var committed bool
	err := sess.Do(func(fs *store.FieldStore) error {
		var err error
		switch target {
		case session.TargetSettings:
			logger.LogSubSection("Settings")
			committed, err = utils.EditSettings(editor.OpenSettings(fs))
		case session.TargetWind:
			logger.LogSubSection(logger.IconWind + " Wind turbines")
			committed, err = utils.EditRecords(editor.Open(fs, store.Turbines))
		case session.TargetSolar:
			logger.LogSubSection(logger.IconSolar + " Solar arrays")
			committed, err = utils.EditRecords(editor.Open(fs, store.SolarPanels))
		case session.TargetEV:
			logger.LogSubSection(logger.IconEV + " Electric vehicles")
			committed, err = utils.EditRecords(editor.Open(fs, store.EVCars))
		default:
			err = fmt.Errorf("no editor for %q", target)
		}
		return err
	})
	if err != nil {
		return err
	}

	if committed {
		logger.Successf("%s updated", target)
	} else {
		logger.Info("Changes discarded")
	}
	return nil
}

func clickDiagram(sess *session.Session) error {
	var answer string
	err := survey.AskOne(&survey.Input{
		Message: "Click position (x, y):",
		Help:    "Coordinates on the 700x700 system diagram, e.g. 300, 200",
	}, &answer, survey.WithValidator(func(val interface{}) error {
		str, _ := val.(string)
		_, err := parsePoint(str)
		return err
	}))
	if err != nil {
		return err
	}

	p, err := parsePoint(answer)
	if err != nil {
		return err
	}

	target, region, ok := session.Locate(appConfig.RegionMap(), p)
	if !ok {
		if region != "" {
			logger.Infof("%s has no editor", region)
		} else {
			logger.Info("Nothing there")
		}
		return nil
	}
	return openEditor(sess, target)
}

func parsePoint(s string) (regions.Point, error) {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	if len(parts) != 2 {
		return regions.Point{}, fmt.Errorf("enter two numbers: x, y")
	}
	x, errX := strconv.ParseFloat(parts[0], 64)
	y, errY := strconv.ParseFloat(parts[1], 64)
	if errX != nil || errY != nil {
		return regions.Point{}, fmt.Errorf("enter two numbers: x, y")
	}
	return regions.Point{X: x, Y: y}, nil
}

// saveConfiguration saves under config_name. Without a name the settings editor is
// opened so one can be entered, then the save is retried once.
func saveConfiguration(sess *session.Session) error {
	name, err := sess.Save()
	if errors.Is(err, models.ErrValidation) {
		logger.Warnf("%s %v", logger.IconWarning, err)
		if err := openEditor(sess, session.TargetSettings); err != nil {
			return err
		}
		name, err = sess.Save()
	}
	if err != nil {
		return err
	}

	logger.Successf("%s Saved configuration %q", logger.IconSave, name)
	logCounts(sess.Assemble())
	return nil
}

func pickSaved(sess *session.Session, message string) (string, bool, error) {
	names := sess.Configs().List()
	if len(names) == 0 {
		logger.Info("No saved configurations")
		return "", false, nil
	}

	var name string
	err := survey.AskOne(&survey.Select{
		Message: message,
		Options: names,
		Default: sess.Configs().Current(),
	}, &name)
	if err != nil {
		return "", false, err
	}
	return name, true, nil
}

func loadConfiguration(sess *session.Session) error {
	name, ok, err := pickSaved(sess, "Load configuration:")
	if err != nil || !ok {
		return err
	}
	if err := sess.Load(name); err != nil {
		return err
	}
	logger.Successf("Loaded configuration %q", name)
	logCounts(sess.Assemble())
	return nil
}

// logCounts prints how many entries each record list of cfg holds
func logCounts(cfg models.Configuration) {
	logger.LogKeyValue("Turbine types", len(cfg.Turbines))
	logger.LogKeyValue("Solar types", len(cfg.SolarPanels))
	logger.LogKeyValue("Electric vehicles", len(cfg.EVCars))
}

func deleteConfiguration(sess *session.Session) error {
	name, ok, err := pickSaved(sess, "Delete configuration:")
	if err != nil || !ok {
		return err
	}

	confirm, err := utils.Confirm(fmt.Sprintf("Are you sure you want to delete %s?", name), false)
	if err != nil {
		return err
	}
	if !confirm {
		logger.Info("Deletion cancelled")
		return nil
	}

	if err := sess.Delete(name); err != nil {
		return err
	}
	logger.Successf("%s Deleted configuration %q", logger.IconDelete, name)
	return nil
}

func showSaved(sess *session.Session) {
	names := sess.Configs().List()
	if len(names) == 0 {
		logger.Info("No saved configurations")
		return
	}

	current := sess.Configs().Current()
	table := logger.NewTable("NAME", "CURRENT")
	for _, name := range names {
		marker := ""
		if name == current {
			marker = "*"
		}
		table.AddRow(name, marker)
	}
	table.Print()
}

func showConfiguration(sess *session.Session) error {
	data, err := yaml.Marshal(sess.Assemble())
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	fmt.Print(string(data))
	return nil
}

// batchShell makes one non-interactive pass through every editor
func batchShell(sess *session.Session) error {
	for _, target := range []session.Target{
		session.TargetSettings, session.TargetWind, session.TargetSolar, session.TargetEV,
	} {
		if err := openEditor(sess, target); err != nil {
			return err
		}
	}

	if sess.Assemble().System.ConfigName != "" {
		if _, err := sess.Save(); err != nil {
			return err
		}
	}
	return showConfiguration(sess)
}
