package sync

import (
	"github.com/opensquare-network/referenda-syncer/src/opensquare"
	"github.com/opensquare-network/referenda-syncer/src/signer"
	"github.com/opensquare-network/referenda-syncer/src/subscan"
	"github.com/opensquare-network/referenda-syncer/src/subsquare"
	"github.com/opensquare-network/referenda-syncer/src/utils/config"
	"github.com/opensquare-network/referenda-syncer/src/utils/model"
	"github.com/opensquare-network/referenda-syncer/src/utils/monitoring"
	monitor_syncer "github.com/opensquare-network/referenda-syncer/src/utils/monitoring/syncer"
	"github.com/opensquare-network/referenda-syncer/src/utils/publisher"
	"github.com/opensquare-network/referenda-syncer/src/utils/task"
)

type Controller struct {
	*task.Task
}

// Main class that orchestrates the mirror.
// Wires fetching, signing, publishing and the dedup ledger together.
func NewController(config *config.Config) (self *Controller, err error) {
	self = new(Controller)

	self.Task = task.NewTask(config, "controller")

	// A bad signing secret is a startup failure, not a cycle error
	proposalSigner, err := signer.NewSigner(config)
	if err != nil {
		return nil, err
	}

	db, err := model.NewConnection(self.Ctx, config, "syncer")
	if err != nil {
		return nil, err
	}

	monitor := monitor_syncer.NewMonitor().
		WithMaxHistorySize(30).
		WithCycleInterval(config.Syncer.Interval)

	server := monitoring.NewServer(config).
		WithMonitor(monitor)

	store := NewStore(config).
		WithDB(db)

	syncer := NewSyncer(config).
		WithMonitor(monitor).
		WithStore(store).
		WithFetcher(subsquare.NewClient(config)).
		WithSnapshots(subscan.NewClient(config)).
		WithSigner(proposalSigner).
		WithPublisher(opensquare.NewClient(config))

	self.Task = self.Task.
		WithSubtask(monitor.Task).
		WithSubtask(server.Task).
		WithSubtask(syncer.Task)

	if config.Redis.Enabled {
		redisPublisher := publisher.NewRedisPublisher[*model.PublishedProposal](config, "redis-publisher").
			WithInputChannel(syncer.Output).
			WithChannelName(config.Redis.ChannelName).
			WithMonitor(monitor)

		self.Task = self.Task.WithSubtask(redisPublisher.Task)
	}

	return
}
