package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/carlosrabelo/edgesync/internal/domain/entities"
	"github.com/carlosrabelo/edgesync/internal/infrastructure/config"
	"github.com/carlosrabelo/edgesync/internal/infrastructure/transport"
	"github.com/carlosrabelo/edgesync/internal/platform"
	"github.com/carlosrabelo/edgesync/internal/util"
)

// switchRun is one connected switch ready for a command
type switchRun struct {
	cfg    entities.SwitchConfig
	repo   *transport.SwitchAdapter
	driver platform.SwitchDriver
}

// switchTask does the work of a command on one switch and returns what to
// print for it.
type switchTask func(run *switchRun) (string, error)

// switchCheck vets a switch configuration before any session is opened
type switchCheck func(sw entities.SwitchConfig) error

// promptFunc reads a secret for label
type promptFunc func(label string) (string, error)

// loadSwitches resolves the switches selected by --target or --all
func loadSwitches() ([]entities.SwitchConfig, error) {
	if !allSwitches && target == "" {
		return nil, errors.New("target required: use --target <target> or --all")
	}
	path, err := config.Find(configPath)
	if err != nil {
		return nil, err
	}
	util.Debugf("Using configuration file %s", path)

	cfg, err := config.Load(path, config.Options{
		Platform:       platformName,
		Write:          writeMode,
		Save:           saveMode,
		VerbosityLevel: verbosity,
	})
	if err != nil {
		return nil, err
	}
	if allSwitches {
		return cfg.Switches, nil
	}
	sw, err := cfg.Switch(target)
	if err != nil {
		return nil, err
	}
	return []entities.SwitchConfig{sw}, nil
}

// terminalPrompt returns a prompt reading from the controlling terminal, or
// nil when stdin is not one.
func terminalPrompt(in *os.File, out io.Writer) promptFunc {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil
	}
	return func(label string) (string, error) {
		fmt.Fprintf(out, "%s: ", label)
		secret, err := term.ReadPassword(fd)
		fmt.Fprintln(out)
		if err != nil {
			return "", errors.Wrap(err, "failed to read password")
		}
		return string(secret), nil
	}
}

// fillSecrets asks for every required credential missing from sw
func fillSecrets(sw *entities.SwitchConfig, prompt promptFunc) error {
	for _, name := range config.MissingSecrets(*sw) {
		if prompt == nil {
			return errors.Errorf("%s for %s is not configured and no terminal is available", name, sw.Target)
		}
		secret, err := prompt(fmt.Sprintf("%s@%s %s", sw.Username, sw.Target, strings.ReplaceAll(name, "_", " ")))
		if err != nil {
			return err
		}
		if name == "password" {
			sw.Password = secret
		}
	}
	return nil
}

// connect opens the switch session and settles the platform driver
func connect(pool *transport.Pool, sw entities.SwitchConfig) (*switchRun, error) {
	client := pool.Get(sw)

	var driver platform.SwitchDriver
	if sw.PlatformID() != platform.Auto {
		resolved, err := platform.Get(sw.PlatformID())
		if err != nil {
			return nil, err
		}
		driver = resolved
		if ac, ok := client.(transport.AuthConfigurable); ok {
			ac.SetAuthSequence(driver.GetAuthenticationSequence(sw.Username, sw.Password, sw.EnablePassword))
		}
	}

	adapter := transport.NewSwitchAdapter(client)
	if err := adapter.Connect(); err != nil {
		return nil, util.NewTransportError("connect", err)
	}
	if driver == nil {
		detected, err := platform.Detect(adapter)
		if err != nil {
			return nil, errors.Wrap(err, "failed to auto-detect switch platform")
		}
		driver = detected
		if sw.IsDebugEnabled() {
			util.WithDevice(sw.Target).Debugf("Platform auto-detected as %s", driver.Name())
		}
	}
	sw.Platform = driver.Name()

	return &switchRun{cfg: sw, repo: adapter, driver: driver}, nil
}

// prepareSwitches loads the selected switches, runs check on each and fills
// in missing secrets. Nothing is dialed here.
func prepareSwitches(errOut io.Writer, check switchCheck) ([]entities.SwitchConfig, error) {
	switches, err := loadSwitches()
	if err != nil {
		return nil, err
	}
	if check != nil {
		for _, sw := range switches {
			if err := check(sw); err != nil {
				return nil, err
			}
		}
	}
	prompt := terminalPrompt(os.Stdin, errOut)
	for i := range switches {
		if err := fillSecrets(&switches[i], prompt); err != nil {
			return nil, err
		}
	}
	return switches, nil
}

// forEachSwitch runs task on every selected switch, --parallel at a time,
// and prints the outputs in configuration order once all are done.
func forEachSwitch(out, errOut io.Writer, check switchCheck, task switchTask) error {
	switches, err := prepareSwitches(errOut, check)
	if err != nil {
		return err
	}
	return runAll(switches, out, errOut, func(sw entities.SwitchConfig, pool *transport.Pool) (string, error) {
		run, err := connect(pool, sw)
		if err != nil {
			return "", err
		}
		return task(run)
	})
}

// runAll fans work out over switches. A failing switch does not stop the
// others.
func runAll(switches []entities.SwitchConfig, out, errOut io.Writer, work func(entities.SwitchConfig, *transport.Pool) (string, error)) error {
	pool := transport.NewPool()
	defer pool.CloseAll()

	outputs := make([]string, len(switches))
	failures := make([]error, len(switches))

	g := new(errgroup.Group)
	g.SetLimit(parallel)
	for i, sw := range switches {
		g.Go(func() error {
			outputs[i], failures[i] = work(sw, pool)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for i, sw := range switches {
		if outputs[i] != "" {
			fmt.Fprint(out, outputs[i])
		}
		if failures[i] != nil {
			failed++
			util.WithDevice(sw.Target).WithError(failures[i]).Debug("Run failed")
			if len(switches) > 1 {
				fmt.Fprintf(errOut, "%s %s: %v\n", red("FAILED"), sw.Target, failures[i])
			}
		}
	}

	switch {
	case failed == 0:
		return nil
	case len(switches) == 1:
		return failures[0]
	default:
		return errors.Errorf("%d of %d switches failed", failed, len(switches))
	}
}
