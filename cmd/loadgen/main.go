// loadgen drives the order API at a fixed rate. Useful for watching the
// write-behind flush batching under sustained traffic.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

type placeRequest struct {
	SellerID  int64   `json:"seller_id"`
	ProductID int64   `json:"product_id"`
	User      string  `json:"user"`
	Quantity  int64   `json:"quantity"`
	Price     float64 `json:"price"`
	Note      string  `json:"note"`
}

func main() {
	addr := flag.String("addr", "http://localhost:8080", "server base URL")
	rate := flag.Int("rate", 10, "orders per second")
	duration := flag.Duration("duration", 10*time.Second, "how long to run")
	sellers := flag.Int64("sellers", 3, "seller id range to spread orders over")
	users := flag.Int("users", 5, "distinct user names")
	flag.Parse()

	interval, err := tickInterval(*rate)
	if err != nil {
		log.Fatal(err)
	}

	client := &http.Client{Timeout: 5 * time.Second}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	deadline := time.After(*duration)

	var sent, failed atomic.Int64
	var wg sync.WaitGroup
	start := time.Now()

loop:
	for {
		select {
		case <-deadline:
			break loop
		case <-ticker.C:
			wg.Add(1)
			go func() {
				defer wg.Done()
				req := placeRequest{
					SellerID:  1 + rand.Int63n(*sellers),
					ProductID: 1 + rand.Int63n(10),
					User:      fmt.Sprintf("user-%d", rand.Intn(*users)),
					Quantity:  1 + rand.Int63n(5),
					Price:     float64(rand.Intn(10000)) / 100.0,
				}
				body, _ := json.Marshal(req)
				resp, err := client.Post(*addr+"/api/order/user/place", "application/json", bytes.NewReader(body))
				if err != nil {
					failed.Add(1)
					return
				}
				_ = resp.Body.Close()
				if resp.StatusCode != http.StatusOK {
					failed.Add(1)
					return
				}
				sent.Add(1)
			}()
		}
	}

	wg.Wait()
	elapsed := time.Since(start)
	log.Printf("placed %d orders (%d failed) in %s (%.1f/s)",
		sent.Load(), failed.Load(), elapsed.Round(time.Millisecond),
		float64(sent.Load())/elapsed.Seconds())
}

func tickInterval(rate int) (time.Duration, error) {
	if rate <= 0 {
		return 0, fmt.Errorf("rate must be positive, got %d", rate)
	}
	return time.Second / time.Duration(rate), nil
}
