package dropwatch_test

import (
	"testing"

	"github.com/fwojciec/dropwatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCredentials(t *testing.T) {
	t.Parallel()

	t.Run("accepts a JSON object", func(t *testing.T) {
		t.Parallel()

		creds, err := dropwatch.ParseCredentials(`{"type":"service_account","private_key":"secret"}`)

		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"service_account","private_key":"secret"}`, string(creds.Raw()))
	})

	t.Run("missing blob is not found", func(t *testing.T) {
		t.Parallel()

		_, err := dropwatch.ParseCredentials("")

		assert.Equal(t, dropwatch.ENOTFOUND, dropwatch.ErrorCode(err))
	})

	t.Run("rejects non-object JSON", func(t *testing.T) {
		t.Parallel()

		for _, raw := range []string{"not json", "[1,2]", "null", `"str"`} {
			_, err := dropwatch.ParseCredentials(raw)
			assert.Equal(t, dropwatch.EINVALID, dropwatch.ErrorCode(err), raw)
		}
	})

	t.Run("fingerprint is stable and hides the secret", func(t *testing.T) {
		t.Parallel()

		a, err := dropwatch.ParseCredentials(`{"private_key":"secret"}`)
		require.NoError(t, err)
		b, err := dropwatch.ParseCredentials(`{"private_key":"secret"}`)
		require.NoError(t, err)

		assert.Equal(t, a.Fingerprint(), b.Fingerprint())
		assert.NotContains(t, a.String(), "secret")
	})
}
