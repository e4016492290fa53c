// tecdsamgr is a small operator tool around the IDKG complaint
// protocol: it creates keypairs, inspects serialized complaints, and
// verifies a complaint against a dealing and a round description.
package main

import (
	"encoding/hex"
	"io/ioutil"
	"os"

	"github.com/BurntSushi/toml"
	"go.dedis.ch/kyber/v3/util/random"
	"go.dedis.ch/onet/v3/log"
	"go.dedis.ch/tecdsa"
	"go.dedis.ch/tecdsa/complaint"
	"go.dedis.ch/tecdsa/dealings"
	"go.dedis.ch/tecdsa/ecc"
	"go.dedis.ch/tecdsa/mega"
	"golang.org/x/xerrors"
	"gopkg.in/urfave/cli.v1"
)

// roundConfig describes the protocol round a complaint belongs to.
// All byte fields are hex encoded.
type roundConfig struct {
	AssociatedData string
	ComplainerKey  string
}

func main() {
	cliApp := cli.NewApp()
	cliApp.Name = "tecdsamgr"
	cliApp.Usage = "inspect and verify IDKG complaints"
	cliApp.Version = "0.1"
	cliApp.Commands = []cli.Command{
		{
			Name:    "keypair",
			Usage:   "create a MEGa keypair and write it to stdout",
			Aliases: []string{"kp"},
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "curve",
					Value: "Ed25519",
					Usage: "curve to create the keypair on",
				},
			},
			Action: keypair,
		},
		{
			Name:      "inspect",
			Usage:     "decode a serialized complaint",
			Aliases:   []string{"i"},
			ArgsUsage: "complaint-file",
			Action:    inspect,
		},
		{
			Name:      "verify",
			Usage:     "verify a complaint against a dealing",
			Aliases:   []string{"v"},
			ArgsUsage: "complaint-file",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "round, r",
					Usage: "toml file describing the round",
				},
				cli.StringFlag{
					Name:  "dealing, d",
					Usage: "file holding the serialized dealing",
				},
				cli.IntFlag{
					Name:  "dealer",
					Usage: "index of the accused dealer",
				},
				cli.IntFlag{
					Name:  "complainer",
					Usage: "index of the complaining receiver",
				},
			},
			Action: verify,
		},
	}
	cliApp.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "debug, dbg",
			Value: 0,
			Usage: "debug level from 0 to 5",
		},
	}
	cliApp.Before = func(c *cli.Context) error {
		log.SetDebugVisible(c.Int("debug"))
		return nil
	}
	log.ErrFatal(cliApp.Run(os.Args))
}

func keypair(c *cli.Context) error {
	curve, err := ecc.CurveTypeByName(c.String("curve"))
	if err != nil {
		return err
	}
	sk, pk, err := mega.GenerateKeyPair(curve, random.New())
	if err != nil {
		return err
	}
	skBuf, err := sk.Marshal()
	if err != nil {
		return err
	}
	pkBuf, err := pk.Marshal()
	if err != nil {
		return err
	}
	log.Infof("Private: %s", hex.EncodeToString(skBuf))
	log.Infof("Public:  %s", hex.EncodeToString(pkBuf))
	return nil
}

func inspect(c *cli.Context) error {
	cpl, err := loadComplaint(c)
	if err != nil {
		return err
	}
	shared, err := cpl.SharedSecret.Marshal()
	if err != nil {
		return err
	}
	log.Infof("Curve:         %s", cpl.SharedSecret.Curve())
	log.Infof("Shared secret: %s", hex.EncodeToString(shared))
	return nil
}

func verify(c *cli.Context) error {
	cpl, err := loadComplaint(c)
	if err != nil {
		return err
	}

	var cfg roundConfig
	if c.String("round") == "" {
		return xerrors.New("please give a round file with --round")
	}
	if _, err := toml.DecodeFile(c.String("round"), &cfg); err != nil {
		return xerrors.Errorf("reading round file: %v", err)
	}
	assocData, err := hex.DecodeString(cfg.AssociatedData)
	if err != nil {
		return xerrors.Errorf("decoding associated data: %v", err)
	}
	keyBuf, err := hex.DecodeString(cfg.ComplainerKey)
	if err != nil {
		return xerrors.Errorf("decoding complainer key: %v", err)
	}
	complainerKey, err := mega.UnmarshalPublicKey(keyBuf)
	if err != nil {
		return err
	}

	if c.String("dealing") == "" {
		return xerrors.New("please give a dealing file with --dealing")
	}
	dealingBuf, err := ioutil.ReadFile(c.String("dealing"))
	if err != nil {
		return xerrors.Errorf("reading dealing file: %v", err)
	}
	dealing, err := dealings.Deserialize(dealingBuf)
	if err != nil {
		return err
	}

	dealer := tecdsa.NodeIndex(c.Int("dealer"))
	complainer := tecdsa.NodeIndex(c.Int("complainer"))
	if err := cpl.Verify(dealing, dealer, complainer, complainerKey, assocData); err != nil {
		return xerrors.Errorf("complaint did not verify: %v", err)
	}
	log.Info("Complaint verified: the dealing is bad")
	return nil
}

func loadComplaint(c *cli.Context) (*complaint.Complaint, error) {
	if c.NArg() < 1 {
		return nil, xerrors.New("please give the complaint file")
	}
	buf, err := ioutil.ReadFile(c.Args().First())
	if err != nil {
		return nil, xerrors.Errorf("reading complaint file: %v", err)
	}
	return complaint.Deserialize(buf)
}
