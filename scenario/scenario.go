// Package scenario implements the marketplace integration test harness: it
// provisions the contract fixtures, deploys the programs and drives the test
// functions against a running node.
package scenario

import (
	"context"
	"crypto/rand"
	"fmt"
	"os"
	"reflect"
	"runtime"

	"go.uber.org/zap"

	"github.com/gear-dapps/nft-marketplace/artifact"
	"github.com/gear-dapps/nft-marketplace/builder"
	"github.com/gear-dapps/nft-marketplace/client"
	"github.com/gear-dapps/nft-marketplace/config"
	"github.com/gear-dapps/nft-marketplace/market"
	"github.com/gear-dapps/nft-marketplace/market/ft"
	"github.com/gear-dapps/nft-marketplace/market/nft"
	"github.com/gear-dapps/nft-marketplace/testing"
	"github.com/gear-dapps/nft-marketplace/types"
)

// marketArtifactName is the base name of the marketplace release artifact.
const marketArtifactName = "nft_marketplace"

// Env is the test environment.
type Env struct {
	// Logger is the logger that can be used by tests.
	Logger *zap.Logger
	// Client is the node client.
	Client client.Node
	// Market is the client of the deployed marketplace program.
	Market market.V1
	// NFT is the client of the deployed NFT program fixture.
	NFT nft.V1
	// FT is the client of the deployed fungible token program fixture.
	FT ft.V1
	// Config is the harness configuration.
	Config *config.Config
}

// RunTestFunction is a test function.
type RunTestFunction func(context.Context, *Env) error

// Scenario is a set of test functions run against one deployment.
type Scenario struct {
	// Name is the scenario name.
	Name string

	// RunTest is a list of test functions to run once the programs are
	// deployed.
	RunTest []RunTestFunction
}

// NewScenario creates a new scenario with the given test functions.
func NewScenario(name string, tests []RunTestFunction) *Scenario {
	return &Scenario{
		Name:    name,
		RunTest: tests,
	}
}

// Runner provisions fixtures and runs scenarios.
type Runner struct {
	cfg     *config.Config
	logger  *zap.Logger
	fetcher *artifact.Fetcher
	builder *builder.Builder
}

// NewRunner creates a new scenario runner.
func NewRunner(cfg *config.Config, logger *zap.Logger) *Runner {
	return &Runner{
		cfg:     cfg,
		logger:  logger.Named("scenario"),
		fetcher: artifact.NewFetcher(logger),
		builder: builder.New(".", logger, builder.WithTargetDir(cfg.TargetDir)),
	}
}

// Run provisions the fixtures, deploys the programs and executes the
// scenario's test functions in order. The first failure aborts the run.
func (r *Runner) Run(ctx context.Context, sc *Scenario) error {
	r.logger.Info("running scenario", zap.String("scenario", sc.Name))

	if err := r.fetcher.EnsureAll(ctx, r.cfg.Fixtures); err != nil {
		return err
	}

	marketWasm, err := r.builder.FindArtifact(marketArtifactName)
	if err != nil {
		r.logger.Info("release artifact missing, building")
		if _, err = r.builder.Build(ctx); err != nil {
			return err
		}
		if marketWasm, err = r.builder.FindArtifact(marketArtifactName); err != nil {
			return err
		}
	}

	conn, err := client.Connect(ctx, r.cfg.Endpoint)
	if err != nil {
		return err
	}
	defer conn.Close()
	nc := client.New(conn)

	env, err := r.deploy(ctx, nc, marketWasm)
	if err != nil {
		return err
	}

	for _, test := range sc.RunTest {
		testName := runtime.FuncForPC(reflect.ValueOf(test).Pointer()).Name()

		r.logger.Info("running test", zap.String("test", testName))
		testCtx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
		testErr := test(testCtx, env)
		cancel()
		if testErr != nil {
			r.logger.Error("test failed",
				zap.String("test", testName),
				zap.Error(testErr),
			)
			return fmt.Errorf("scenario %s: test %s: %w", sc.Name, testName, testErr)
		}
		r.logger.Info("test passed", zap.String("test", testName))
	}

	return nil
}

// deploy uploads the fungible token and NFT fixtures and the marketplace
// program, and approves both fixtures on the marketplace.
func (r *Runner) deploy(ctx context.Context, nc client.Node, marketWasm string) (*Env, error) {
	admin := testing.Alice
	treasury := testing.Dave

	ftPath, err := r.cfg.FixturePath("fungible_token")
	if err != nil {
		return nil, err
	}
	nftPath, err := r.cfg.FixturePath("nft")
	if err != nil {
		return nil, err
	}

	ftID, err := r.deployProgram(ctx, nc, ftPath, &ft.InitFT{
		Name:     "Market Coin",
		Symbol:   "MCOIN",
		Decimals: 12,
	})
	if err != nil {
		return nil, fmt.Errorf("scenario: failed to deploy fungible token: %w", err)
	}

	nftID, err := r.deployProgram(ctx, nc, nftPath, &nft.InitNFT{
		Name:           "Market NFT",
		Symbol:         "MNFT",
		BaseURI:        "ipfs://market-nft/",
		RoyaltyToOwner: 10,
	})
	if err != nil {
		return nil, fmt.Errorf("scenario: failed to deploy nft: %w", err)
	}

	marketID, err := r.deployProgram(ctx, nc, marketWasm, &market.InitMarket{
		AdminID:     admin.Address,
		TreasuryID:  treasury.Address,
		TreasuryFee: r.cfg.Market.TreasuryFee,
	})
	if err != nil {
		return nil, fmt.Errorf("scenario: failed to deploy marketplace: %w", err)
	}

	r.logger.Info("programs deployed",
		zap.Stringer("ft", ftID),
		zap.Stringer("nft", nftID),
		zap.Stringer("market", marketID),
	)

	mkt := market.NewV1(nc, marketID)
	for _, mb := range []*client.MessageBuilder{
		mkt.AddNftContract(nftID),
		mkt.AddFTContract(ftID),
	} {
		if err = mb.AppendSign(ctx, admin.Signer); err != nil {
			return nil, err
		}
		if err = mb.SubmitTx(ctx, nil); err != nil {
			return nil, fmt.Errorf("scenario: failed to approve contract: %w", err)
		}
	}

	return &Env{
		Logger: r.logger,
		Client: nc,
		Market: mkt,
		NFT:    nft.NewV1(nc, nftID),
		FT:     ft.NewV1(nc, ftID),
		Config: r.cfg,
	}, nil
}

func (r *Runner) deployProgram(ctx context.Context, nc client.Node, path string, init interface{}) (types.ActorID, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return types.ActorID{}, fmt.Errorf("scenario: failed to read %s: %w", path, err)
	}

	// A fresh salt per run keeps repeated runs against a shared node from
	// colliding on the derived program ID.
	salt := make([]byte, 32)
	if _, err = rand.Read(salt); err != nil {
		return types.ActorID{}, err
	}

	return client.DeployProgram(ctx, nc, testing.Alice.Signer, code, salt, init, r.cfg.GasLimit)
}
