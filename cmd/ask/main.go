package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jinwoohan/insuragraph/internal/app"
	"github.com/jinwoohan/insuragraph/internal/platform/logger"
)

// Terminal loop against the QA pipeline: one product, many questions.
func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	pipeline, err := app.BuildPipeline(cfg, log)
	if err != nil {
		log.Error("Could not build pipeline", "error", err)
		os.Exit(1)
	}
	defer pipeline.Close(context.Background())

	reader := bufio.NewReader(os.Stdin)

	productID := strings.TrimSpace(cfg.DefaultProductID)
	if productID == "" {
		fmt.Print("상품 ID를 입력하세요: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println()
			return
		}
		productID = strings.TrimSpace(line)
	}
	if productID == "" {
		fmt.Println("상품 ID가 필요합니다.")
		os.Exit(1)
	}

	fmt.Printf("상품 %s 에 대해 질문하세요. (종료: q)\n", productID)
	for {
		fmt.Print("\n질문> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println()
			return
		}
		question := strings.TrimSpace(line)
		switch strings.ToLower(question) {
		case "":
			continue
		case "q", "quit", "exit", "종료":
			return
		}

		turn, err := pipeline.Service.Ask(context.Background(), productID, question)
		if turn.Context != "" {
			fmt.Printf("\n[메타데이터 요약]\n%s\n", turn.Context)
		}
		if turn.Cypher != "" {
			fmt.Printf("\n[Cypher]\n%s\n", turn.Cypher)
		}
		fmt.Printf("[조회 결과] %d행\n", turn.RowCount)
		if err != nil {
			if turn.Fault != nil {
				fmt.Printf("\n[오류: %s] %s\n", turn.Fault.Kind, turn.Fault.Detail)
			} else {
				fmt.Printf("\n[오류] %v\n", err)
			}
			continue
		}
		fmt.Printf("\n[답변]\n%s\n", turn.Answer)
	}
}
