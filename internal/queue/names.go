package queue

// Queue names shared by the memory and RabbitMQ backends.
const (
	TransferQueueName = "transfers"
	FinalizeQueueName = "finalizers"
)
