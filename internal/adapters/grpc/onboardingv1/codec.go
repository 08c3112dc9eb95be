// Package onboardingv1 は onboarding.v1 API のメッセージ定義とサービス記述子です。
// メッセージは JSON コーデックで送受信されます。
package onboardingv1

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
)

// CodecName は gRPC の content-subtype として使うコーデック名です。
const CodecName = "json"

func init() {
	encoding.RegisterCodec(Codec{})
}

// Codec は onboarding.v1 のメッセージを JSON で符号化します。
type Codec struct{}

// Marshal はメッセージを JSON に変換します。
func (Codec) Marshal(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("onboardingv1: marshal %T: %w", v, err)
	}
	return b, nil
}

// Unmarshal は JSON をメッセージに復元します。空のペイロードはゼロ値のままです。
func (Codec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("onboardingv1: unmarshal %T: %w", v, err)
	}
	return nil
}

// Name はコーデック名を返します。
func (Codec) Name() string {
	return CodecName
}
