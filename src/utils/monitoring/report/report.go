package report

type Report struct {
	Run            *RunReport            `json:"run,omitempty"`
	Syncer         *SyncerReport         `json:"syncer,omitempty"`
	RedisPublisher *RedisPublisherReport `json:"redis_publisher,omitempty"`
}
