package main

import (
	"bytes"
	"context"
	"fmt"
	"io"

	spb "github.com/kawafs/kawa/pkg/pb/store"
	"github.com/kawafs/kawa/pkg/streaming"
	"google.golang.org/grpc"
)

// Talks to a store-server on the default port.
func main() {
	conn, err := grpc.Dial("localhost:10779", grpc.WithInsecure())
	if err != nil {
		fmt.Printf("%v\n", err)
		return
	}
	defer conn.Close()

	client := spb.NewStoreServiceClient(conn)
	ctx := context.Background()

	testBytes := []byte("sixteen byte blk")
	_, err = client.PutBlock(ctx, &spb.PutBlockRequest{Key: "demo", Data: testBytes})
	if err != nil {
		fmt.Printf("%v\n", err)
		return
	}

	gresp, err := client.GetBlock(ctx, &spb.GetBlockRequest{Key: "demo"})
	if err != nil {
		fmt.Printf("%v\n", err)
		return
	}
	fmt.Println(string(gresp.Data))

	big := bytes.Repeat([]byte("abcd"), (streaming.Threshold/4)+1)
	stream, err := client.PutBlockStream(ctx)
	if err != nil {
		fmt.Printf("%v\n", err)
		return
	}
	chunker := streaming.NewChunker(big)
	for chunker.Next() {
		preq := &spb.PutBlockStreamRequest{Key: "demo-big", Chunk: chunker.Value()}
		if err := stream.Send(preq); err != nil {
			fmt.Printf("%v\n", err)
			return
		}
	}
	if _, err := stream.CloseAndRecv(); err != nil {
		fmt.Printf("%v\n", err)
		return
	}

	gstream, err := client.GetBlockStream(ctx, &spb.GetBlockStreamRequest{Key: "demo-big"})
	if err != nil {
		fmt.Printf("%v\n", err)
		return
	}
	var buff []byte
	for {
		in, err := gstream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Printf("%v\n", err)
			return
		}
		buff = append(buff, in.Chunk...)
	}
	fmt.Println(len(buff), bytes.Equal(buff, big))

	kresp, err := client.GetKeys(ctx, &spb.GetKeysRequest{})
	if err != nil {
		fmt.Printf("%v\n", err)
		return
	}
	fmt.Println(kresp.Keys)

	for _, key := range []string{"demo", "demo-big"} {
		if _, err := client.DeleteBlock(ctx, &spb.DeleteBlockRequest{Key: key}); err != nil {
			fmt.Printf("%v\n", err)
		}
	}
}
