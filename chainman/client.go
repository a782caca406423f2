package chainman

import (
	"context"
	"sync"
	"time"

	"github.com/InvArch/invarch-bridge-service/gerror"
	"github.com/InvArch/invarch-bridge-service/log"
	"github.com/InvArch/invarch-bridge-service/utils"
	gsrpc "github.com/centrifuge/go-substrate-rpc-client/v4"
	"github.com/centrifuge/go-substrate-rpc-client/v4/signature"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
	"github.com/centrifuge/go-substrate-rpc-client/v4/xxhash"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
)

const (
	// keyring network byte; addresses are rendered with the configured prefix
	keyringNetwork = 42
	prefixLen      = 32
	queryChunk     = 256
	nonceCacheSize = 16
)

// Client is a Querier and Mutator for one chain, backed by a substrate
// websocket RPC connection.
type Client struct {
	name    string
	api     *gsrpc.SubstrateAPI
	keyring *signature.KeyringPair
	timeout time.Duration

	lock        sync.RWMutex
	meta        *types.Metadata
	specVersion uint32
	genesis     types.Hash

	// nonceLock serialises sign and submit of this client's signer
	nonceLock sync.Mutex
	nonces    *lru.Cache[string, uint64]
}

// NewClient connects to url and loads the chain metadata. The signer is
// optional; without it the client can only query.
func NewClient(name, url string, cfg Config) (*Client, error) {
	if url == "" {
		return nil, errors.Wrapf(gerror.ErrMissingParams, "%s endpoint is empty", name)
	}
	api, err := gsrpc.NewSubstrateAPI(url)
	if err != nil {
		return nil, errors.Wrapf(gerror.ErrChainNotConnected, "connect %s at %s: %v", name, url, err)
	}
	c := &Client{
		name:    name,
		api:     api,
		timeout: cfg.FinalizationTimeout.Duration,
	}
	if cfg.SignerSeed != "" {
		kp, err := signature.KeyringPairFromSecret(cfg.SignerSeed, keyringNetwork)
		if err != nil {
			return nil, errors.Wrap(gerror.ErrInvalidAccount, "invalid signer seed")
		}
		c.keyring = &kp
		if c.nonces, err = lru.New[string, uint64](nonceCacheSize); err != nil {
			return nil, err
		}
		var id utils.AccountID
		copy(id[:], kp.PublicKey)
		log.Infof("%s signer %s", name, id.SS58(cfg.SS58Prefix))
	}
	genesis, err := api.RPC.Chain.GetBlockHash(0)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s genesis hash", name)
	}
	c.genesis = genesis
	if err := c.RefreshMetadata(); err != nil {
		return nil, err
	}
	log.Infof("connected to %s at %s, spec version %d", name, url, c.specVersion)
	return c, nil
}

// Name returns the chain name the client was created with.
func (c *Client) Name() string {
	return c.name
}

// Signer returns the signer account, if one is configured.
func (c *Client) Signer() (utils.AccountID, bool) {
	var id utils.AccountID
	if c.keyring == nil {
		return id, false
	}
	copy(id[:], c.keyring.PublicKey)
	return id, true
}

// RefreshMetadata reloads the runtime metadata and version.
func (c *Client) RefreshMetadata() error {
	meta, err := c.api.RPC.State.GetMetadataLatest()
	if err != nil {
		return errors.Wrapf(err, "read %s metadata", c.name)
	}
	rv, err := c.api.RPC.State.GetRuntimeVersionLatest()
	if err != nil {
		return errors.Wrapf(err, "read %s runtime version", c.name)
	}
	c.lock.Lock()
	c.meta = meta
	c.specVersion = uint32(rv.SpecVersion)
	c.lock.Unlock()
	return nil
}

func (c *Client) metadata() *types.Metadata {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.meta
}

// ReadStorage implements Querier.
func (c *Client) ReadStorage(ctx context.Context, pallet, item string, target interface{}, keyArgs ...[]byte) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	key, err := types.CreateStorageKey(c.metadata(), pallet, item, keyArgs...)
	if err != nil {
		return false, errors.Wrapf(err, "storage key %s.%s", pallet, item)
	}
	ok, err := c.api.RPC.State.GetStorageLatest(key, target)
	if err != nil {
		return false, errors.Wrapf(err, "read %s.%s on %s", pallet, item, c.name)
	}
	return ok, nil
}

// ReadStorageEntries implements Querier.
func (c *Client) ReadStorageEntries(ctx context.Context, pallet, item string) ([]StorageEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	prefix := append(xxhash.New128([]byte(pallet)).Sum(nil), xxhash.New128([]byte(item)).Sum(nil)...)
	keys, err := c.api.RPC.State.GetKeysLatest(types.NewStorageKey(prefix))
	if err != nil {
		return nil, errors.Wrapf(err, "list %s.%s keys on %s", pallet, item, c.name)
	}

	entries := make([]StorageEntry, 0, len(keys))
	for start := 0; start < len(keys); start += queryChunk {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		end := start + queryChunk
		if end > len(keys) {
			end = len(keys)
		}
		sets, err := c.api.RPC.State.QueryStorageAtLatest(keys[start:end])
		if err != nil {
			return nil, errors.Wrapf(err, "read %s.%s entries on %s", pallet, item, c.name)
		}
		for _, set := range sets {
			for _, change := range set.Changes {
				if !change.HasStorageData || len(change.StorageKey) < prefixLen {
					continue
				}
				entries = append(entries, StorageEntry{
					KeyArgs: append([]byte(nil), change.StorageKey[prefixLen:]...),
					Value:   change.StorageData,
				})
			}
		}
	}
	return entries, nil
}

// GetConstant implements Querier.
func (c *Client) GetConstant(ctx context.Context, pallet, name string, target interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := lookupConstant(c.metadata(), pallet, name, target); err != nil {
		return errors.Wrapf(err, "%s", c.name)
	}
	return nil
}

// lookupConstant decodes the value of pallet.name from v14 metadata into
// target.
func lookupConstant(meta *types.Metadata, pallet, name string, target interface{}) error {
	if meta.Version < 14 {
		return errors.Wrapf(gerror.ErrUnsupportedVersion, "metadata v%d", meta.Version)
	}
	for _, p := range meta.AsMetadataV14.Pallets {
		if string(p.Name) != pallet {
			continue
		}
		for _, constant := range p.Constants {
			if string(constant.Name) == name {
				return codec.Decode(constant.Value, target)
			}
		}
	}
	return errors.Wrapf(gerror.ErrStorageNotFound, "constant %s.%s", pallet, name)
}

// Submit implements Mutator: the call is signed by the configured signer,
// submitted, and watched until finalized.
func (c *Client) Submit(ctx context.Context, call Call) (Submission, error) {
	if c.keyring == nil {
		return nil, errors.Wrapf(gerror.ErrInvalidAccount, "no signer configured for %s", c.name)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rv, err := c.api.RPC.State.GetRuntimeVersionLatest()
	if err != nil {
		return nil, errors.Wrapf(err, "read %s runtime version", c.name)
	}
	c.lock.RLock()
	upgraded := uint32(rv.SpecVersion) != c.specVersion
	c.lock.RUnlock()
	if upgraded {
		log.Infof("%s runtime upgraded to %d, reloading metadata", c.name, rv.SpecVersion)
		if err := c.RefreshMetadata(); err != nil {
			return nil, err
		}
	}

	meta := c.metadata()
	tc, err := buildCall(meta, call)
	if err != nil {
		return nil, err
	}
	ext := types.NewExtrinsic(tc)

	c.nonceLock.Lock()
	defer c.nonceLock.Unlock()
	nonce, err := c.nonce(meta)
	if err != nil {
		return nil, err
	}
	opts := types.SignatureOptions{
		BlockHash:          c.genesis,
		Era:                types.ExtrinsicEra{IsMortalEra: false},
		GenesisHash:        c.genesis,
		Nonce:              types.NewUCompactFromUInt(nonce),
		SpecVersion:        rv.SpecVersion,
		Tip:                types.NewUCompactFromUInt(0),
		TransactionVersion: rv.TransactionVersion,
	}
	if err := ext.Sign(*c.keyring, opts); err != nil {
		return nil, errors.Wrapf(err, "sign %s", call.Name())
	}
	sub, err := c.api.RPC.Author.SubmitAndWatchExtrinsic(ext)
	if err != nil {
		c.nonces.Remove(c.keyring.Address)
		return nil, errors.Wrapf(err, "submit %s to %s", call.Name(), c.name)
	}
	c.nonces.Add(c.keyring.Address, nonce)
	log.Infof("submitted %s to %s, nonce %d", call.Name(), c.name, nonce)
	return watch(ctx, sub, c.timeout), nil
}

// nonce returns the next nonce of the signer, taking submissions still in
// the pool into account.
func (c *Client) nonce(meta *types.Metadata) (uint64, error) {
	key, err := types.CreateStorageKey(meta, "System", "Account", c.keyring.PublicKey)
	if err != nil {
		return 0, errors.Wrap(err, "signer account key")
	}
	var info types.AccountInfo
	if _, err := c.api.RPC.State.GetStorageLatest(key, &info); err != nil {
		return 0, errors.Wrapf(err, "read signer account on %s", c.name)
	}
	return nextNonce(c.nonces, c.keyring.Address, uint64(info.Nonce)), nil
}

// nextNonce returns the nonce to sign with given the account nonce read from
// chain and the last nonce this process submitted for signer.
func nextNonce(cache *lru.Cache[string, uint64], signer string, onChain uint64) uint64 {
	if last, found := cache.Get(signer); found && last >= onChain {
		return last + 1
	}
	return onChain
}

// Close drops the RPC connection.
func (c *Client) Close() {
	c.api.Client.Close()
}

func buildCall(meta *types.Metadata, call Call) (types.Call, error) {
	args := make([]interface{}, 0, len(call.Args))
	for _, arg := range call.Args {
		if inner, ok := arg.(Call); ok {
			nested, err := buildCall(meta, inner)
			if err != nil {
				return types.Call{}, err
			}
			args = append(args, nested)
			continue
		}
		args = append(args, arg)
	}
	tc, err := types.NewCall(meta, call.Name(), args...)
	if err != nil {
		return types.Call{}, errors.Wrapf(err, "build call %s", call.Name())
	}
	return tc, nil
}
