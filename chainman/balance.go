package chainman

import (
	"context"
	"math/big"

	"github.com/InvArch/invarch-bridge-service/utils"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
	"github.com/pkg/errors"
)

// BalanceKind selects the pallet a balance is kept in.
type BalanceKind string

const (
	// BalanceSystem is the native currency, System.Account.
	BalanceSystem BalanceKind = "system"
	// BalanceAssets is an asset of the assets pallet, Assets.Account.
	BalanceAssets BalanceKind = "assets"
	// BalanceTokens is a multi-currency balance, Tokens.Accounts.
	BalanceTokens BalanceKind = "tokens"
)

type assetAccount struct {
	Balance types.U128
}

type tokenAccount struct {
	Free     types.U128
	Reserved types.U128
	Frozen   types.U128
}

// BalanceOf reads the free balance of account. assetID is ignored for the
// native currency. A missing account has a zero balance.
func BalanceOf(ctx context.Context, q Querier, kind BalanceKind, account utils.AccountID, assetID uint32) (*big.Int, error) {
	switch kind {
	case BalanceSystem:
		var info types.AccountInfo
		ok, err := q.ReadStorage(ctx, "System", "Account", &info, account[:])
		if err != nil || !ok {
			return new(big.Int), err
		}
		return u128(info.Data.Free), nil
	case BalanceAssets:
		id, err := codec.Encode(types.NewU32(assetID))
		if err != nil {
			return nil, err
		}
		var acc assetAccount
		ok, err := q.ReadStorage(ctx, "Assets", "Account", &acc, id, account[:])
		if err != nil || !ok {
			return new(big.Int), err
		}
		return u128(acc.Balance), nil
	case BalanceTokens:
		id, err := codec.Encode(types.NewU32(assetID))
		if err != nil {
			return nil, err
		}
		var acc tokenAccount
		ok, err := q.ReadStorage(ctx, "Tokens", "Accounts", &acc, account[:], id)
		if err != nil || !ok {
			return new(big.Int), err
		}
		return u128(acc.Free), nil
	}
	return nil, errors.Errorf("unknown balance kind %q", kind)
}

func u128(v types.U128) *big.Int {
	if v.Int == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v.Int)
}
