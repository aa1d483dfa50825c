package tx

import (
	"fmt"
	"io/ioutil"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	cmdcommon "boscoin.io/ballot/cmd/ballot/common"
	"boscoin.io/ballot/lib/transaction/operation"
)

func parseUint(c *cobra.Command, name, s string) uint64 {
	i, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		cmdcommon.PrintFlagsError(c, name, err)
	}
	return i
}

var createVoterCmd = &cobra.Command{
	Use:   "create-voter <name>",
	Short: "Register the source as voter",
	Args:  cobra.ExactArgs(1),
	Run: func(c *cobra.Command, args []string) {
		run(c, operation.NewCreateVoter(args[0]))
	},
}

var changeChairpersonCmd = &cobra.Command{
	Use:   "change-chairperson <address>",
	Short: "Hand the chairperson over to the voter",
	Args:  cobra.ExactArgs(1),
	Run: func(c *cobra.Command, args []string) {
		run(c, operation.NewChangeChairperson(args[0]))
	},
}

var setVoterActiveStateCmd = &cobra.Command{
	Use:   "set-voter-active-state <address> <true|false>",
	Short: "Activate or deactivate the voter",
	Args:  cobra.ExactArgs(2),
	Run: func(c *cobra.Command, args []string) {
		active, err := strconv.ParseBool(args[1])
		if err != nil {
			cmdcommon.PrintFlagsError(c, "<true|false>", err)
		}
		run(c, operation.NewSetVoterActiveState(args[0], active))
	},
}

var newProposalsCmd = &cobra.Command{
	Use:   "new-proposals <duration> <subject> [<subject>...]",
	Short: "Open new voting; the duration is in seconds, 0 for no deadline",
	Args:  cobra.MinimumNArgs(2),
	Run: func(c *cobra.Command, args []string) {
		duration := parseUint(c, "<duration>", args[0])
		run(c, operation.NewNewProposals(duration, args[1:]...))
	},
}

var voteProposalCmd = &cobra.Command{
	Use:   "vote-proposal <voting id> <proposal id>",
	Short: "Vote to the proposal of the voting",
	Args:  cobra.ExactArgs(2),
	Run: func(c *cobra.Command, args []string) {
		run(c, operation.NewVoteProposal(
			parseUint(c, "<voting id>", args[0]),
			parseUint(c, "<proposal id>", args[1]),
		))
	},
}

var postBallotCmd = &cobra.Command{
	Use:   "post-ballot <proposals file|->",
	Short: "Post the proposal list of new ballot",
	Args:  cobra.ExactArgs(1),
	Run: func(c *cobra.Command, args []string) {
		b, err := readInput(args[0])
		if err != nil {
			cmdcommon.PrintFlagsError(c, "<proposals file>", err)
		}
		run(c, operation.NewPostBallot(string(b)))
	},
}

var voteBallotCmd = &cobra.Command{
	Use:   "vote-ballot <proposals hash> <proposal id> <subject>",
	Short: "Fill the vote slot of the source in the ballot",
	Args:  cobra.ExactArgs(3),
	Run: func(c *cobra.Command, args []string) {
		run(c, operation.NewVoteBallot(args[0], parseUint(c, "<proposal id>", args[1]), args[2]))
	},
}

func readInput(name string) ([]byte, error) {
	if name == "-" {
		return ioutil.ReadAll(os.Stdin)
	}

	b, err := ioutil.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %v", name, err)
	}
	return b, nil
}
