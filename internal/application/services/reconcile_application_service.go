// Package services orchestrates a reconciliation run against one switch:
// normalize the desired state, read the device, plan, then write unless the
// run is a dry run.
package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/carlosrabelo/edgesync/internal/domain/entities"
	"github.com/carlosrabelo/edgesync/internal/domain/params"
	"github.com/carlosrabelo/edgesync/internal/domain/ports"
	domain "github.com/carlosrabelo/edgesync/internal/domain/services"
	"github.com/carlosrabelo/edgesync/internal/infrastructure/metrics"
	"github.com/carlosrabelo/edgesync/internal/platform"
	"github.com/carlosrabelo/edgesync/internal/util"
)

// Domain names used in logs and metrics
const (
	DomainVLANs      = "vlans"
	DomainInterfaces = "interfaces"
	DomainVoice      = "voice"
	DomainAll        = "all"
)

// SaveFailedWarning is reported when no save command succeeded
const SaveFailedWarning = "unable to persist configuration automatically; please save manually"

// ReconcileApplicationService implements ports.Reconciler for one switch
type ReconcileApplicationService struct {
	repo     ports.SwitchRepository
	driver   platform.SwitchDriver
	config   entities.SwitchConfig
	recorder *metrics.Recorder
	runID    string
	log      *logrus.Entry
}

var _ ports.Reconciler = (*ReconcileApplicationService)(nil)

// step is one domain pass writing into a shared result
type step func(result *entities.Result) error

// NewReconcileApplicationService creates a service bound to one switch
// session. recorder may be nil.
func NewReconcileApplicationService(cfg entities.SwitchConfig, repo ports.SwitchRepository, driver platform.SwitchDriver, recorder *metrics.Recorder) *ReconcileApplicationService {
	runID := uuid.NewString()
	return &ReconcileApplicationService{
		repo:     repo,
		driver:   driver,
		config:   cfg,
		recorder: recorder,
		runID:    runID,
		log: util.WithFields(map[string]interface{}{
			"device": cfg.Target,
			"run":    runID,
		}),
	}
}

// RunID identifies the run in logs
func (s *ReconcileApplicationService) RunID() string {
	return s.runID
}

// ApplyVLANs reconciles VLAN entities and port membership
func (s *ReconcileApplicationService) ApplyVLANs(in entities.VlanInput) (entities.Result, error) {
	st, err := s.vlanStep(in)
	if err != nil {
		return s.reject(DomainVLANs, err)
	}
	return s.run(DomainVLANs, st)
}

// ApplyInterfaces reconciles interface attributes
func (s *ReconcileApplicationService) ApplyInterfaces(in entities.InterfaceInput) (entities.Result, error) {
	st, err := s.interfaceStep(in)
	if err != nil {
		return s.reject(DomainInterfaces, err)
	}
	return s.run(DomainInterfaces, st)
}

// ApplyVoice reconciles voice VLAN and LLDP settings
func (s *ReconcileApplicationService) ApplyVoice(in entities.VoiceInput) (entities.Result, error) {
	st, err := s.voiceStep(in)
	if err != nil {
		return s.reject(DomainVoice, err)
	}
	return s.run(DomainVoice, st)
}

// ApplyAll reconciles every section present in desired, VLANs first so
// the other domains see them. Every section is validated before the device
// is touched.
func (s *ReconcileApplicationService) ApplyAll(desired entities.DesiredState) (entities.Result, error) {
	var steps []step
	if desired.VLANs != nil {
		st, err := s.vlanStep(*desired.VLANs)
		if err != nil {
			return s.reject(DomainVLANs, err)
		}
		steps = append(steps, st)
	}
	if desired.Interfaces != nil {
		st, err := s.interfaceStep(*desired.Interfaces)
		if err != nil {
			return s.reject(DomainInterfaces, err)
		}
		steps = append(steps, st)
	}
	if desired.Voice != nil {
		st, err := s.voiceStep(*desired.Voice)
		if err != nil {
			return s.reject(DomainVoice, err)
		}
		steps = append(steps, st)
	}
	if len(steps) == 0 {
		s.log.Info("No desired state configured")
		return emptyResult(), nil
	}

	return s.run(DomainAll, func(result *entities.Result) error {
		for _, st := range steps {
			if err := st(result); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *ReconcileApplicationService) vlanStep(in entities.VlanInput) (step, error) {
	want, err := params.NormalizeVLANs(in)
	if err != nil {
		return nil, err
	}
	return func(result *entities.Result) error {
		have, err := s.driver.GetVLANs(s.repo, s.config)
		if err != nil {
			return err
		}
		entitiesPlan := domain.VLANCommands(want, have, in.Purge)
		result.Add(entitiesPlan)
		if err := s.write(entitiesPlan, s.driver.RunCommands); err != nil {
			return err
		}

		switchports, err := s.driver.GetSwitchports(s.repo, s.config)
		if err != nil {
			return err
		}
		membership, err := domain.MembershipCommands(want, switchports)
		if err != nil {
			return err
		}
		result.Add(membership)
		return s.write(membership, s.driver.LoadConfig)
	}, nil
}

func (s *ReconcileApplicationService) interfaceStep(in entities.InterfaceInput) (step, error) {
	want, err := params.NormalizeInterfaces(in)
	if err != nil {
		return nil, err
	}
	return func(result *entities.Result) error {
		have, err := s.driver.GetInterfaceConfigs(s.repo, s.config)
		if err != nil {
			return err
		}
		probe := func(iface string) (int, error) {
			return s.driver.GetRunningMTU(s.repo, s.config, iface)
		}
		if err := domain.HydrateRunningMTU(want, have, probe); err != nil {
			return err
		}
		plan, err := domain.InterfaceCommands(want, have)
		if err != nil {
			return err
		}
		result.Add(plan)
		return s.write(plan, s.driver.LoadConfig)
	}, nil
}

func (s *ReconcileApplicationService) voiceStep(in entities.VoiceInput) (step, error) {
	want, err := params.NormalizeVoice(in)
	if err != nil {
		return nil, err
	}
	return func(result *entities.Result) error {
		have, err := s.driver.GetVoicePorts(s.repo, s.config)
		if err != nil {
			return err
		}
		plan, err := domain.VoiceCommands(want, have)
		if err != nil {
			return err
		}
		result.Add(plan)
		return s.write(plan, s.driver.LoadConfig)
	}, nil
}

type sender func(repo ports.SwitchRepository, cfg entities.SwitchConfig, commands []string) error

// write sends a plan unless the run is a dry run or the plan is empty
func (s *ReconcileApplicationService) write(plan entities.Plan, send sender) error {
	if s.config.Sandbox || plan.Empty() {
		return nil
	}
	return send(s.repo, s.config, plan.Commands)
}

// run connects, executes st and settles the run: save, log, metrics
func (s *ReconcileApplicationService) run(domainName string, st step) (entities.Result, error) {
	start := time.Now()
	log := s.log.WithField("domain", domainName)
	result := emptyResult()

	if !s.repo.IsConnected() {
		if err := s.repo.Connect(); err != nil {
			err = util.NewTransportError("connect", err)
			s.observe(domainName, metrics.ResultFailed, result, start)
			return result, err
		}
	}

	if err := st(&result); err != nil {
		log.WithError(err).Error("Reconciliation failed")
		s.observe(domainName, metrics.ResultFailed, result, start)
		return result, err
	}

	for _, w := range result.Warnings {
		log.Warn(w)
	}

	switch {
	case !result.Changed:
		log.Info("No changes required")
	case s.config.Sandbox:
		log.Infof("Changes simulated (%d commands, sandbox mode enabled, use --write to apply)", len(result.Commands))
	default:
		log.Infof("Applied %d commands", len(result.Commands))
		if s.config.Save && !s.save() {
			result.Warnings = append(result.Warnings, SaveFailedWarning)
			log.Warn(SaveFailedWarning)
		}
	}

	outcome := metrics.ResultUnchanged
	if result.Changed {
		outcome = metrics.ResultChanged
	}
	s.observe(domainName, outcome, result, start)
	return result, nil
}

// save tries each save command in turn and reports whether one succeeded
func (s *ReconcileApplicationService) save() bool {
	for _, cmd := range s.driver.SaveCommands() {
		if s.config.IsDebugEnabled() {
			s.log.Debugf("Saving configuration using '%s'", cmd)
		}
		if err := s.driver.RunCommands(s.repo, s.config, []string{cmd}); err != nil {
			s.log.WithError(err).Warnf("Error saving configuration with '%s'", cmd)
			continue
		}
		s.log.Info("Configuration saved")
		return true
	}
	return false
}

// reject reports a parameter set that failed normalization
func (s *ReconcileApplicationService) reject(domainName string, err error) (entities.Result, error) {
	s.log.WithField("domain", domainName).WithError(err).Error("Invalid parameters")
	result := emptyResult()
	s.observe(domainName, metrics.ResultFailed, result, time.Now())
	return result, err
}

func (s *ReconcileApplicationService) observe(domainName, outcome string, result entities.Result, start time.Time) {
	s.recorder.ObserveRun(s.config.Target, domainName, outcome, len(result.Commands), len(result.Warnings), time.Since(start))
}

func emptyResult() entities.Result {
	return entities.Result{Commands: []string{}, Warnings: []string{}}
}
