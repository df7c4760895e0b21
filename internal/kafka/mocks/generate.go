package mocks

//go:generate mockgen -source=../consumer.go -destination=mock_consumer.go -package=mocks
//go:generate mockgen -source=../producer.go -destination=mock_producer.go -package=mocks
