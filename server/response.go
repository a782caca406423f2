package server

import (
	"net/http"

	"github.com/InvArch/invarch-bridge-service/gerror"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// Response codes of the API envelope
const (
	defaultSuccessCode    = 0
	defaultErrorCode      = 1
	codeInvalidParams     = 2
	codeNotFound          = 3
	codeInProgress        = 4
	codeUnsupportedAsset  = 5
	codeIPRestricted      = 6
	respCodeKey           = "respCode"
	respMsgKey            = "respMsg"
	ipRestrictionErrorMsg = "The bridge isn't available in your region"
)

// Response is the envelope of every API response
type Response struct {
	Code int64       `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

func success(c *gin.Context, data interface{}) {
	c.Set(respCodeKey, int64(defaultSuccessCode))
	c.JSON(http.StatusOK, Response{Code: defaultSuccessCode, Data: data})
}

func fail(c *gin.Context, err error) {
	code, status := errorCode(err)
	c.Set(respCodeKey, code)
	c.Set(respMsgKey, err.Error())
	c.AbortWithStatusJSON(status, Response{Code: code, Msg: err.Error()})
}

// errorCode maps an error to the envelope code and the http status
func errorCode(err error) (int64, int) {
	switch {
	case errors.Is(err, gerror.ErrMissingParams), errors.Is(err, gerror.ErrInvalidAccount):
		return codeInvalidParams, http.StatusBadRequest
	case errors.Is(err, gerror.ErrAssetNotFound), errors.Is(err, gerror.ErrOperationNotFound), errors.Is(err, gerror.ErrStorageNotFound):
		return codeNotFound, http.StatusNotFound
	case errors.Is(err, gerror.ErrOperationInProgress):
		return codeInProgress, http.StatusConflict
	case errors.Is(err, gerror.ErrUnsupportedLocation):
		return codeUnsupportedAsset, http.StatusUnprocessableEntity
	}
	return defaultErrorCode, http.StatusInternalServerError
}
