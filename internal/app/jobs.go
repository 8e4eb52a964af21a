package app

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, err := time.LoadLocation(a.appConfig.System.Location)
	if err != nil {
		loc = time.Local
	}
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	spec := a.appConfig.API.ProbeInterval
	if spec == "" {
		spec = "@every 60s"
	}

	if _, err := a.sched.AddFunc(spec, func() {
		go a.SchedApiProbeTask()
	}); err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SchedApiProbeTask checks upstream API reachability so the admin
// dashboard can show the last known status.
func (a *Application) SchedApiProbeTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), a.appConfig.APITimeout())
	defer cancel()
	a.apiProbe.Check(ctx)
}
