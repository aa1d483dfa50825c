// Package tx makes, signs and sends the ballot transactions to the node.
package tx

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	cmdcommon "boscoin.io/ballot/cmd/ballot/common"
	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/common/keypair"
	"boscoin.io/ballot/lib/node/runner/api/resource"
	"boscoin.io/ballot/lib/transaction"
	"boscoin.io/ballot/lib/transaction/operation"
)

var (
	TxCmd *cobra.Command

	flagEndpoint   string = common.GetENVValue("BALLOT_ENDPOINT", common.DefaultEndpoint)
	flagNetworkID  string = common.GetENVValue("BALLOT_NETWORK_ID", "")
	flagSecretSeed string = common.GetENVValue("BALLOT_SECRET_SEED", "")
	flagDryRun     bool
	flagWait       time.Duration
	flagFormat     string = "prettyjson"
)

const waitInterval = 500 * time.Millisecond

func init() {
	TxCmd = &cobra.Command{
		Use:   "tx",
		Short: "Sign and send transaction",
		Run: func(c *cobra.Command, args []string) {
			if len(args) < 1 {
				c.Usage()
			}
		},
	}

	TxCmd.PersistentFlags().StringVar(&flagEndpoint, "endpoint", flagEndpoint, "endpoint of node")
	TxCmd.PersistentFlags().StringVar(&flagNetworkID, "network-id", flagNetworkID, "network id")
	TxCmd.PersistentFlags().StringVar(&flagSecretSeed, "secret-seed", flagSecretSeed, "secret seed of source")
	TxCmd.PersistentFlags().BoolVar(&flagDryRun, "dry-run", flagDryRun, "print the signed transaction without sending")
	TxCmd.PersistentFlags().DurationVar(&flagWait, "wait", flagWait, "wait until the transaction is stored in block")
	TxCmd.PersistentFlags().StringVar(&flagFormat, "format", flagFormat, "format={json, prettyjson, yaml}")

	TxCmd.AddCommand(
		createVoterCmd,
		changeChairpersonCmd,
		setVoterActiveStateCmd,
		newProposalsCmd,
		voteProposalCmd,
		postBallotCmd,
		voteBallotCmd,
	)
}

func parseSource() (*keypair.Full, error) {
	if len(flagSecretSeed) < 1 {
		return nil, errors.New("must be given")
	}

	kp, err := keypair.Parse(flagSecretSeed)
	if err != nil {
		return nil, err
	}

	full, ok := kp.(*keypair.Full)
	if !ok {
		return nil, errors.New("not a secret seed")
	}

	return full, nil
}

func makeTransaction(kp *keypair.Full, networkID []byte, opb operation.Body) (tx transaction.Transaction, err error) {
	if tx, err = transaction.NewTransaction(kp.Address(), rand.Uint64(), opb); err != nil {
		return
	}
	tx.Sign(kp, networkID)

	return
}

// Client posts the transactions to the node api.
type Client struct {
	endpoint *common.Endpoint
	client   *common.HTTP2Client
}

func NewClient(endpoint string) (*Client, error) {
	e, err := common.ParseEndpoint(endpoint)
	if err != nil {
		return nil, err
	}

	client, err := common.NewHTTP2Client(10*time.Second, &common.DefaultRetrySetting)
	if err != nil {
		return nil, err
	}

	return &Client{endpoint: e, client: client}, nil
}

func (c *Client) url(path string) string {
	u := (*c.endpoint)
	u.Path = path
	u.RawQuery = ""
	return (&u).String()
}

func (c *Client) request(resp *http.Response, err error) (map[string]interface{}, error) {
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	decoded := map[string]interface{}{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, errors.Wrapf(err, "unexpected response, status=%d", resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK {
		return decoded, errors.Errorf("failed; status=%d code=%v message=%v", resp.StatusCode, decoded["code"], decoded["message"])
	}

	return decoded, nil
}

func (c *Client) Send(tx transaction.Transaction) (map[string]interface{}, error) {
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")

	return c.request(c.client.Post(c.url(resource.URLTransactions), common.MustMarshalJSON(tx), headers))
}

func (c *Client) Get(hash string) (map[string]interface{}, error) {
	path := strings.Replace(resource.URLTransactionByHash, "{id}", hash, -1)
	return c.request(c.client.Get(c.url(path), nil))
}

// Wait polls the transaction until it is not pending anymore.
func (c *Client) Wait(hash string, timeout time.Duration) (map[string]interface{}, error) {
	deadline := time.Now().Add(timeout)
	for {
		r, err := c.Get(hash)
		if err != nil {
			return r, err
		}
		if r["status"] != resource.TransactionStatusPending {
			return r, nil
		}
		if time.Now().After(deadline) {
			return r, errors.Errorf("timed out; transaction still pending: %s", hash)
		}
		time.Sleep(waitInterval)
	}
}

func run(c *cobra.Command, opb operation.Body) {
	kp, err := parseSource()
	if err != nil {
		cmdcommon.PrintFlagsError(c, "--secret-seed", err)
	}
	if len(flagNetworkID) < 1 {
		cmdcommon.PrintFlagsError(c, "--network-id", errors.New("must be given"))
	}
	encode, ok := cmdcommon.DefaultEncodes[flagFormat]
	if !ok {
		cmdcommon.PrintFlagsError(c, "--format", fmt.Errorf("%q not recognized", flagFormat))
	}

	tx, err := makeTransaction(kp, []byte(flagNetworkID), opb)
	if err != nil {
		cmdcommon.PrintError(c, err)
	}

	if flagDryRun {
		var decoded interface{}
		common.MustUnmarshalJSON(common.MustMarshalJSON(tx), &decoded)
		if err := encode(decoded, os.Stdout); err != nil {
			cmdcommon.PrintError(c, err)
		}
		return
	}

	client, err := NewClient(flagEndpoint)
	if err != nil {
		cmdcommon.PrintFlagsError(c, "--endpoint", err)
	}
	defer client.client.Close()

	result, err := client.Send(tx)
	if err == nil && flagWait > 0 {
		result, err = client.Wait(tx.GetHash(), flagWait)
	}
	if result != nil {
		encode(result, os.Stdout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
