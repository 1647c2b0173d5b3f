package test

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/go-sql-driver/mysql"

	"github.com/flowutils/flowkit"
	"github.com/flowutils/flowkit/blocks"
	"github.com/flowutils/flowkit/file"
	"github.com/flowutils/flowkit/serializer"
)

type order struct {
	OrderNo string  `order:"0" header:"order_no"`
	Amount  float64 `order:"1" header:"amount"`
}

// task unit: normalize one raw order line
func normalize(ctx context.Context, item interface{}) (interface{}, error) {
	line := item.(string)
	parts := strings.Split(line, "|")
	if len(parts) != 2 {
		return nil, fmt.Errorf("malformed order line:%v", line)
	}
	amount, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return nil, fmt.Errorf("bad amount in order line:%v", line)
	}
	return order{OrderNo: parts[0], Amount: amount}, nil
}

func main() {
	ctx := context.Background()

	//block store backed by mysql, block names resolved through a catalog
	db, err := sql.Open("mysql", "root:root123@tcp(127.0.0.1:3306)/flowkit?charset=utf8&parseTime=true")
	if err != nil {
		panic(err)
	}
	store, err := blocks.NewSQLStore(db)
	if err != nil {
		panic(err)
	}
	catalog, err := blocks.LoadCatalog("blocks.yaml")
	if err != nil {
		panic(err)
	}
	cells := catalog.Bind(store)

	//the ftp password block is fetched on first use only
	block, err := cells["ftp-password"].Get(ctx)
	if err != nil {
		panic(err)
	}
	secret := &blocks.Secret{}
	if err := block.Decode(secret); err != nil {
		panic(err)
	}

	//map a workload in batches of 100, stop after 15 failures
	killSwitch, err := flowkit.NewCountSwitch(15)
	if err != nil {
		panic(err)
	}
	batchTask, err := flowkit.NewBatchTask("normalize-orders", normalize, 100,
		flowkit.WithKillSwitch(killSwitch))
	if err != nil {
		panic(err)
	}

	workload := make([]interface{}, 0, 1000)
	for i := 0; i < 1000; i++ {
		workload = append(workload, fmt.Sprintf("ORD-%04d|%v", i, i))
	}
	states := batchTask.Map(ctx, workload)

	orders := make([]interface{}, 0, len(states))
	for _, state := range states {
		if state.IsCompleted() {
			orders = append(orders, state.Value)
		}
	}
	fmt.Printf("mapped %v of %v items, %v normalized\n", len(states), len(workload), len(orders))

	//land the normalized orders on ftp as csv
	ftpStore := &file.FTPFileStorage{
		Addr:     "127.0.0.1:21",
		User:     "flowkit",
		Password: secret.Get(),
	}
	landing := file.Scoped(ftpStore, "landing/orders")
	if err := file.WriteRecords(landing, "orders.csv", serializer.CSV, orders); err != nil {
		panic(err)
	}
}
