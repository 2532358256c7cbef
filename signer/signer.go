package signer

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/sirupsen/logrus"

	"github.com/omni/bridge-orchestrator/ethclient"
	"github.com/omni/bridge-orchestrator/lifi"
	"github.com/omni/bridge-orchestrator/logging"
)

// fallback when the provider's prepared transaction carries no gas limit
const defaultGasLimit = 600_000

// Account holds the hot key that funds bridge transfers. It submits
// provider-prepared transactions on whichever chain the step targets,
// serializing sends so nonce discovery stays consistent.
type Account struct {
	privateKey *ecdsa.PrivateKey
	address    common.Address
	clients    map[uint64]ethclient.Client
	logger     logging.Logger
	mu         sync.Mutex
}

func NewAccount(privateKeyHex string, clients map[uint64]ethclient.Client, logger logging.Logger) (*Account, error) {
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("can't parse ecdsa private key: %w", err)
	}
	return &Account{
		privateKey: privateKey,
		address:    crypto.PubkeyToAddress(privateKey.PublicKey),
		clients:    clients,
		logger:     logger,
	}, nil
}

func (a *Account) Address() common.Address {
	return a.address
}

// SendTransaction signs the prepared payload for its target chain and
// broadcasts it, returning the transaction hash.
func (a *Account) SendTransaction(ctx context.Context, txReq *lifi.TransactionRequest) (common.Hash, error) {
	client, ok := a.clients[txReq.ChainID]
	if !ok {
		return common.Hash{}, fmt.Errorf("no rpc client for chain %d", txReq.ChainID)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	nonce, err := client.PendingNonceAt(ctx, a.address)
	if err != nil {
		return common.Hash{}, fmt.Errorf("can't fetch pending nonce: %w", err)
	}
	gasPrice := (*big.Int)(txReq.GasPrice)
	if gasPrice == nil {
		gasPrice, err = client.SuggestGasPrice(ctx)
		if err != nil {
			return common.Hash{}, fmt.Errorf("can't fetch gas price: %w", err)
		}
	}
	gasLimit := uint64(txReq.GasLimit)
	if gasLimit == 0 {
		gasLimit = defaultGasLimit
	}
	value := (*big.Int)(txReq.Value)
	if value == nil {
		value = new(big.Int)
	}

	to := txReq.To
	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      gasLimit,
		To:       &to,
		Value:    value,
		Data:     txReq.Data,
	})
	signedTx, err := types.SignTx(tx, types.LatestSignerForChainID(new(big.Int).SetUint64(txReq.ChainID)), a.privateKey)
	if err != nil {
		return common.Hash{}, fmt.Errorf("can't sign transaction: %w", err)
	}
	if err := client.SendTransaction(ctx, signedTx); err != nil {
		return common.Hash{}, fmt.Errorf("can't broadcast transaction: %w", err)
	}
	a.logger.WithFields(logrus.Fields{
		"chain_id": txReq.ChainID,
		"tx_hash":  signedTx.Hash(),
		"nonce":    nonce,
	}).Info("transaction broadcasted")
	return signedTx.Hash(), nil
}
