package orders

// Partition key = order_uid: one order's messages share a partition and a
// consumer worker, so they are applied in the order they were published.
func PartitionKey(orderUID string) []byte { return []byte(orderUID) }
