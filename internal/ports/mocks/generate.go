//go:generate mockgen -source=../cart_storage.go         -destination=./mock_cart_storage.go         -package=mocks
//go:generate mockgen -source=../product_fetcher.go      -destination=./mock_product_fetcher.go      -package=mocks
//go:generate mockgen -source=../product_cache.go        -destination=./mock_product_cache.go        -package=mocks
//go:generate mockgen -source=../product_validator.go    -destination=./mock_product_validator.go    -package=mocks
//go:generate mockgen -source=../logger.go               -destination=./mock_logger.go               -package=mocks
//go:generate mockgen -source=../background_worker.go    -destination=./mock_background_worker.go    -package=mocks
//go:generate mockgen -source=../catalog_read_service.go -destination=./mock_catalog_read_service.go -package=mocks
//go:generate mockgen -source=../cart_service.go         -destination=./mock_cart_service.go         -package=mocks

package mocks
