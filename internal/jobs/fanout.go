package jobs

import (
	"context"
	"log"
	"sync"

	"saledup/internal/models"

	"github.com/google/uuid"
)

// maxShopWorkers bounds the per-tick fan-out. Shops are independent of each
// other; within one shop processing stays serial so pushes to a single device
// keep their order.
const maxShopWorkers = 5

func forEachShop(ctx context.Context, shops []*models.Shop, jobName string, fn func(ctx context.Context, shopID uuid.UUID) error) {
	semaphore := make(chan struct{}, maxShopWorkers)
	var wg sync.WaitGroup

	for _, shop := range shops {
		wg.Add(1)
		go func(shopID uuid.UUID) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if err := fn(ctx, shopID); err != nil {
				log.Printf("%s failed for shop %s: %v", jobName, shopID.String(), err)
			}
		}(shop.ID)
	}

	wg.Wait()
}
