package worker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"abbafoods/internal/metrics"
	"abbafoods/internal/model"
	"abbafoods/internal/repository"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// AlertasCronConfig holds the dependencies of the daily low-stock digest.
type AlertasCronConfig struct {
	Spec       string // standard 5-field cron expression
	Materias   repository.MateriaPrimaRepository
	Dispatcher *Dispatcher
	To         []string
	Metrics    *metrics.Registry
}

// AlertasCron checks stock on a schedule and queues a digest mail when any
// material is below its threshold.
type AlertasCron struct {
	cron *cron.Cron
	cfg  AlertasCronConfig
	now  func() time.Time
}

func NewAlertasCron(cfg AlertasCronConfig) *AlertasCron {
	return &AlertasCron{cron: cron.New(), cfg: cfg, now: time.Now}
}

// Start schedules the job and starts the cron goroutine.
func (a *AlertasCron) Start() error {
	if _, err := a.cron.AddFunc(a.cfg.Spec, a.tick); err != nil {
		return fmt.Errorf("alertas_cron: schedule %q: %w", a.cfg.Spec, err)
	}
	a.cron.Start()
	log.Info().Str("spec", a.cfg.Spec).Msg("alertas_cron: started")
	return nil
}

// Stop waits for a running tick to finish.
func (a *AlertasCron) Stop() {
	<-a.cron.Stop().Done()
	log.Info().Msg("alertas_cron: stopped")
}

func (a *AlertasCron) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if _, err := a.Run(ctx); err != nil {
		log.Error().Err(err).Msg("alertas_cron: run failed")
	}
}

// Run performs one check and returns the materials below threshold.
func (a *AlertasCron) Run(ctx context.Context) ([]model.MateriaPrima, error) {
	list, err := a.cfg.Materias.List(ctx)
	if err != nil {
		return nil, err
	}
	bajos := make([]model.MateriaPrima, 0)
	for _, m := range list {
		if m.StockBajo() {
			bajos = append(bajos, m)
		}
	}
	a.cfg.Metrics.Alertas(len(bajos))

	if len(bajos) == 0 || len(a.cfg.To) == 0 {
		return bajos, nil
	}
	err = a.cfg.Dispatcher.EnqueueEmail(ctx, EmailJobPayload{
		To:      a.cfg.To,
		Subject: fmt.Sprintf("Stock bajo: %d materias primas", len(bajos)),
		Body:    ResumenAlertas(bajos, a.now()),
	})
	if err != nil {
		return bajos, fmt.Errorf("alertas_cron: enqueue digest: %w", err)
	}
	log.Info().Int("alertas", len(bajos)).Msg("alertas_cron: digest queued")
	return bajos, nil
}

// ResumenAlertas formats the digest body.
func ResumenAlertas(bajos []model.MateriaPrima, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Alertas de stock al %s\n\n", now.Format("02/01/2006 15:04"))
	for _, m := range bajos {
		fmt.Fprintf(&b, "- %s: %s %s (mínimo %s %s)\n",
			m.Nombre, m.Cantidad.String(), m.Unidad, m.StockMinimo.String(), m.Unidad)
	}
	return b.String()
}
