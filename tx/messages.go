package tx

import (
	"encoding/json"
	"strings"

	"cosmossdk.io/math"
	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	distributiontypes "github.com/cosmos/cosmos-sdk/x/distribution/types"
	govv1 "github.com/cosmos/cosmos-sdk/x/gov/types/v1"
	stakingtypes "github.com/cosmos/cosmos-sdk/x/staking/types"
	transfertypes "github.com/cosmos/ibc-go/v7/modules/apps/transfer/types"
	clienttypes "github.com/cosmos/ibc-go/v7/modules/core/02-client/types"

	"github.com/geoffmunn/utility-scripts-sub000/router"
)

// TransferKind says which message shape a transfer needs. Classification
// happens exactly once, before message construction; nothing downstream
// re-inspects denoms or addresses.
type TransferKind int

const (
	// KindNativeTransfer moves a bank denom to a local address.
	KindNativeTransfer TransferKind = iota

	// KindContractTransfer moves a token ledgered inside a contract. The denom
	// is the contract's address.
	KindContractTransfer

	// KindIBCTransfer moves a coin to an address on another chain.
	KindIBCTransfer
)

// ClassifyTransfer decides the message shape for a transfer. A recipient
// outside the local bech32 prefix means cross-chain; a denom that is itself a
// local contract address means contract-ledgered.
func ClassifyTransfer(denom, recipient, localPrefix string) TransferKind {
	if !strings.HasPrefix(recipient, localPrefix) {
		return KindIBCTransfer
	}
	if strings.HasPrefix(denom, localPrefix+"1") {
		return KindContractTransfer
	}
	return KindNativeTransfer
}

// NewNativeTransferMsg builds a bank send.
func NewNativeTransferMsg(from, to string, amount sdk.Coin) sdk.Msg {
	return &banktypes.MsgSend{
		FromAddress: from,
		ToAddress:   to,
		Amount:      sdk.NewCoins(amount),
	}
}

// cw20 transfer payload. Amounts travel as strings.
type contractTransferPayload struct {
	Transfer contractTransferBody `json:"transfer"`
}

type contractTransferBody struct {
	Recipient string `json:"recipient"`
	Amount    string `json:"amount"`
}

// NewContractTransferMsg builds an execute against a token contract moving
// amount base units to the recipient.
func NewContractTransferMsg(from, contract, to string, amount math.Int) (sdk.Msg, error) {
	payload := contractTransferPayload{
		Transfer: contractTransferBody{
			Recipient: to,
			Amount:    amount.String(),
		},
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &wasmtypes.MsgExecuteContract{
		Sender:   from,
		Contract: contract,
		Msg:      wasmtypes.RawContractMessage(encoded),
	}, nil
}

// NewIBCTransferMsg builds a cross-chain transfer over the given channel. The
// timeout is an absolute unix nano timestamp; height timeouts are not used.
func NewIBCTransferMsg(channel, from, to string, amount sdk.Coin, timeoutTimestamp uint64, memo string) sdk.Msg {
	return transfertypes.NewMsgTransfer(
		transfertypes.PortID,
		channel,
		amount,
		from,
		to,
		clienttypes.ZeroHeight(),
		timeoutTimestamp,
		memo,
	)
}

// Swap payloads follow the pool router contract's API: a chain of operations
// executed atomically, reverting unless the final output clears
// minimum_receive.
type swapPayload struct {
	ExecuteSwapOperations swapOperations `json:"execute_swap_operations"`
}

type swapOperations struct {
	Operations     []swapOperation `json:"operations"`
	MinimumReceive string          `json:"minimum_receive"`
}

type swapOperation struct {
	NativeSwap nativeSwap `json:"native_swap"`
}

type nativeSwap struct {
	OfferDenom string `json:"offer_denom"`
	AskDenom   string `json:"ask_denom"`
}

// NewSwapMsg builds a contract execute that walks the resolved route,
// offering the given coin and guarding the route's minimum output.
func NewSwapMsg(sender, routerContract string, offer sdk.Coin, route *router.Route) (sdk.Msg, error) {
	operations := make([]swapOperation, 0, len(route.Hops))
	offerDenom := offer.Denom
	for _, hop := range route.Hops {
		operations = append(operations, swapOperation{
			NativeSwap: nativeSwap{
				OfferDenom: offerDenom,
				AskDenom:   hop.OutputDenom,
			},
		})
		offerDenom = hop.OutputDenom
	}

	payload := swapPayload{
		ExecuteSwapOperations: swapOperations{
			Operations:     operations,
			MinimumReceive: route.MinimumOutput.String(),
		},
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &wasmtypes.MsgExecuteContract{
		Sender:   sender,
		Contract: routerContract,
		Msg:      wasmtypes.RawContractMessage(encoded),
		Funds:    sdk.NewCoins(offer),
	}, nil
}

// NewDelegateMsg builds a staking delegation.
func NewDelegateMsg(delegator, validator string, amount sdk.Coin) sdk.Msg {
	return &stakingtypes.MsgDelegate{
		DelegatorAddress: delegator,
		ValidatorAddress: validator,
		Amount:           amount,
	}
}

// NewUndelegateMsg builds an unbonding. Funds arrive after the unbonding
// period, not at confirmation.
func NewUndelegateMsg(delegator, validator string, amount sdk.Coin) sdk.Msg {
	return &stakingtypes.MsgUndelegate{
		DelegatorAddress: delegator,
		ValidatorAddress: validator,
		Amount:           amount,
	}
}

// NewWithdrawRewardsMsg builds a reward withdrawal from one validator.
func NewWithdrawRewardsMsg(delegator, validator string) sdk.Msg {
	return &distributiontypes.MsgWithdrawDelegatorReward{
		DelegatorAddress: delegator,
		ValidatorAddress: validator,
	}
}

// NewVoteMsg builds a governance vote.
func NewVoteMsg(voter string, proposalID uint64, option govv1.VoteOption) sdk.Msg {
	return &govv1.MsgVote{
		ProposalId: proposalID,
		Voter:      voter,
		Option:     option,
	}
}
