package server

import (
	"context"
	"math/big"
	"net/http"
	"strings"

	"github.com/InvArch/invarch-bridge-service/appstate"
	"github.com/InvArch/invarch-bridge-service/bridgectrl"
	"github.com/InvArch/invarch-bridge-service/bridgeop"
	"github.com/InvArch/invarch-bridge-service/chainman"
	"github.com/InvArch/invarch-bridge-service/gerror"
	"github.com/InvArch/invarch-bridge-service/localcache"
	"github.com/InvArch/invarch-bridge-service/log"
	"github.com/InvArch/invarch-bridge-service/messagepush"
	"github.com/InvArch/invarch-bridge-service/models"
	"github.com/InvArch/invarch-bridge-service/xcm"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Dependencies of the bridge service. Producer and Notifier may be nil.
type Dependencies struct {
	Controller *bridgectrl.BridgeController
	Assets     localcache.AssetCache
	State      *appstate.State
	Home       chainman.Mutator
	AssetHub   chainman.Mutator
	Notifier   bridgeop.Notifier
	Producer   messagepush.KafkaProducer
	Registry   *OperationRegistry
}

// BridgeService serves the bridge API
type BridgeService struct {
	// operations run on ctx, they outlive the request starting them
	ctx context.Context
	Dependencies
}

// NewBridgeService creates the http handlers of the bridge API
func NewBridgeService(ctx context.Context, deps Dependencies) *BridgeService {
	if deps.Registry == nil {
		deps.Registry = NewOperationRegistry(0, nil)
	}
	return &BridgeService{ctx: ctx, Dependencies: deps}
}

// CheckAPI is used to check the status of the service
func (s *BridgeService) CheckAPI(c *gin.Context) {
	success(c, gin.H{"status": "ok"})
}

// GetAssets returns the registry assets and whether they can be bridged
func (s *BridgeService) GetAssets(c *gin.Context) {
	chains := s.Controller.Chains()
	assets := s.Assets.GetAssets()
	views := make([]AssetView, 0, len(assets))
	for _, a := range assets {
		view := AssetView{
			AssetDescriptor: a,
			SupportedOut:    bridgectrl.IsBridgeSupportedOut(a, chains.AssetHubParaID),
			SourceChain:     bridgectrl.SourceUnknown,
		}
		if !a.Native {
			view.SupportedIn = bridgectrl.IsBridgeSupportedIn(a.Location, chains.AssetHubParaID)
			view.SourceChain = bridgectrl.GetBridgeSourceChain(a.Location, chains.AssetHubParaID)
		}
		views = append(views, view)
	}
	success(c, views)
}

// ValidateAmount validates an amount against the asset limits and,
// when a payer is given, its balance
func (s *BridgeService) ValidateAmount(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, errors.Wrap(gerror.ErrMissingParams, err.Error()))
		return
	}
	var minAmount *big.Int
	if req.MinAmount != "" {
		v, ok := new(big.Int).SetString(req.MinAmount, 10) //nolint:gomnd
		if !ok {
			fail(c, errors.Wrap(gerror.ErrMissingParams, "minAmount is not an integer"))
			return
		}
		minAmount = v
	}
	result, err := s.Controller.ValidateTransfer(c.Request.Context(), bridgectrl.TransferRequest{
		Direction: req.Direction,
		AssetID:   req.AssetID,
		Amount:    req.Amount,
		Payer:     req.Payer,
		MinAmount: minAmount,
	})
	if err != nil {
		fail(c, err)
		return
	}
	success(c, result)
}

// BridgeIn starts a transfer from the asset hub to the home chain
func (s *BridgeService) BridgeIn(c *gin.Context) {
	var req BridgeInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, errors.Wrap(gerror.ErrMissingParams, err.Error()))
		return
	}
	if strings.TrimSpace(req.Beneficiary) == "" {
		req.Beneficiary = s.State.Preferences().SelectedAccount
	}
	asset, raw, ok := s.checkAmount(c, bridgectrl.DirectionIn, req.AssetID, req.Amount)
	if !ok {
		return
	}
	if asset.Native {
		fail(c, errors.Wrapf(gerror.ErrUnsupportedLocation, "%s is not held on the asset hub", asset.Symbol))
		return
	}

	params := bridgeop.InParams{
		Beneficiary:   req.Beneficiary,
		AssetLocation: asset.Location,
		Amount:        raw,
	}
	if hubID, found := xcm.GetAssetHubID(asset.Location); found {
		params.AssetID = &hubID
	}
	id := uuid.NewString()
	params.OnStatusChange = s.statusPusher(id, bridgectrl.DirectionIn, req.Beneficiary)
	op := bridgeop.NewInOperation(params, s.Controller.Chains(), s.AssetHub, s.Notifier)
	if _, err := op.BuildCall(); err != nil {
		fail(c, err)
		return
	}
	s.start(c, id, bridgectrl.DirectionIn, req.Beneficiary, op)
}

// BridgeOut starts a transfer from a DAO on the home chain to the asset hub
func (s *BridgeService) BridgeOut(c *gin.Context) {
	var req BridgeOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, errors.Wrap(gerror.ErrMissingParams, err.Error()))
		return
	}
	prefs := s.State.Preferences()
	if strings.TrimSpace(req.Destination) == "" {
		req.Destination = prefs.SelectedAccount
	}
	if req.DaoID == nil {
		req.DaoID = prefs.SelectedDaoID
	}
	asset, raw, ok := s.checkAmount(c, bridgectrl.DirectionOut, req.AssetID, req.Amount)
	if !ok {
		return
	}

	id := uuid.NewString()
	op := bridgeop.NewOutOperation(bridgeop.OutParams{
		Destination:    req.Destination,
		Asset:          asset,
		Amount:         raw,
		DaoID:          req.DaoID,
		OnStatusChange: s.statusPusher(id, bridgectrl.DirectionOut, req.Destination),
	}, s.Controller.Chains(), s.Home, s.Notifier)
	if _, err := op.BuildCall(); err != nil {
		fail(c, err)
		return
	}
	s.start(c, id, bridgectrl.DirectionOut, req.Destination, op)
}

// checkAmount validates the typed amount and converts it to minor units.
// It writes the error response when the amount is rejected.
func (s *BridgeService) checkAmount(c *gin.Context, dir bridgectrl.Direction, assetID uint32, typed string) (*models.AssetDescriptor, *big.Int, bool) {
	asset, err := s.Controller.Asset(assetID)
	if err != nil {
		fail(c, err)
		return nil, nil, false
	}
	result, err := s.Controller.ValidateTransfer(c.Request.Context(), bridgectrl.TransferRequest{Direction: dir, AssetID: assetID, Amount: typed})
	if err != nil {
		fail(c, err)
		return nil, nil, false
	}
	if !result.IsValid {
		c.Set(respCodeKey, int64(codeInvalidParams))
		c.Set(respMsgKey, result.Error)
		c.AbortWithStatusJSON(http.StatusBadRequest, Response{Code: codeInvalidParams, Msg: result.Error})
		return nil, nil, false
	}
	raw, _ := s.Controller.Normalizer().RawAmount(typed, asset.Decimals)
	return asset, raw, true
}

func (s *BridgeService) start(c *gin.Context, id string, dir bridgectrl.Direction, account string, op operation) {
	s.Registry.Run(s.ctx, id, dir, account, op)
	entry, err := s.Registry.Get(id)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, entry.view())
}

// statusPusher publishes the status changes of an operation to the bus
func (s *BridgeService) statusPusher(id string, dir bridgectrl.Direction, account string) func(bridgeop.StatusChange) {
	return func(change bridgeop.StatusChange) {
		if s.Producer == nil {
			return
		}
		err := s.Producer.PushBridgeStatus(&messagepush.BridgeStatusUpdate{
			OperationID: id,
			Direction:   string(dir),
			Account:     account,
			Status:      change.Status.String(),
			Message:     change.Message,
		})
		if err != nil {
			log.Warnf("push status of operation %s error: %v", id, err)
		}
	}
}

// GetOperation returns the current status of an operation
func (s *BridgeService) GetOperation(c *gin.Context) {
	entry, err := s.Registry.Get(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	success(c, entry.view())
}

// GetPrices returns the known token prices
func (s *BridgeService) GetPrices(c *gin.Context) {
	success(c, s.State.Prices())
}

// GetPreferences returns the selected account and DAO
func (s *BridgeService) GetPreferences(c *gin.Context) {
	success(c, s.State.Preferences())
}

// PutPreferences replaces the selected account and DAO
func (s *BridgeService) PutPreferences(c *gin.Context) {
	var req PreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, errors.Wrap(gerror.ErrMissingParams, err.Error()))
		return
	}
	ctx := c.Request.Context()
	if err := s.State.SelectAccount(ctx, req.SelectedAccount); err != nil {
		fail(c, err)
		return
	}
	if err := s.State.SelectDao(ctx, req.SelectedDaoID); err != nil {
		fail(c, err)
		return
	}
	success(c, s.State.Preferences())
}
