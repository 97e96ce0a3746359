package internal

import (
	"encoding/json"
	"fmt"
	"os"
)

func Pprint(i interface{}) {
	bytes, err := json.MarshalIndent(i, "", "    ")
	if err != nil {
		panic(err)
	}
	fmt.Println(string(bytes))
}

type Secrets struct {
	Tinkoff   TinkoffSecrets  `json:"tinkoff"`
	Benchmark BenchmarkConfig `json:"benchmark"`
	// Schedule is a cron expression with a seconds field; the bot fires once
	// per entry and still checks the exchange calendar before trading.
	Schedule           string `json:"schedule"`
	OrderPacingSeconds int    `json:"orderPacingSeconds"`
}

type TinkoffSecrets struct {
	Token     string `json:"token"`
	AccountID string `json:"accountId"`
	Exchange  string `json:"exchange"`
}

type BenchmarkConfig struct {
	IndexURL   string `json:"indexUrl"`
	TickersURL string `json:"tickersUrl"`
}

func LoadSecrets() (*Secrets, error) {
	secretsFile := "secrets.json"
	if os.Getenv("INVEST_ENV") == "dev" {
		secretsFile = "secrets-dev.json"
	} else if os.Getenv("INVEST_ENV") == "test" {
		secretsFile = "secrets-test.json"
	}
	f, err := os.ReadFile(secretsFile)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", secretsFile, err)
	}

	secrets := Secrets{}
	err = json.Unmarshal(f, &secrets)
	if err != nil {
		return nil, err
	}

	if secrets.Tinkoff.Token == "" || secrets.Tinkoff.AccountID == "" {
		return nil, fmt.Errorf("secrets missing tinkoff token or account id")
	}
	if secrets.Tinkoff.Exchange == "" {
		secrets.Tinkoff.Exchange = "MOEX"
	}
	if secrets.Benchmark.IndexURL == "" {
		secrets.Benchmark.IndexURL = "https://smart-lab.ru/q/index_stocks/IMOEX/"
	}
	if secrets.Benchmark.TickersURL == "" {
		secrets.Benchmark.TickersURL = "https://smart-lab.ru/q/shares/"
	}
	if secrets.Schedule == "" {
		secrets.Schedule = "0 30 10 * * MON-FRI"
	}
	if secrets.OrderPacingSeconds <= 0 {
		secrets.OrderPacingSeconds = 2
	}

	return &secrets, nil
}
