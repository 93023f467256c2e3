package dleq_test

import (
	"encoding/hex"
	"testing"

	"github.com/privacypass/p256token/internal/curve"
	"github.com/privacypass/p256token/internal/dleq"
	"github.com/privacypass/p256token/internal/testissuer"
)

func fixturePoint(t *testing.T, enc string) curve.Point {
	t.Helper()
	b, err := hex.DecodeString(enc)
	if err != nil {
		t.Fatalf("decoding point fixture %q: %v", enc, err)
	}
	p, err := curve.Sec1Decode(b)
	if err != nil {
		t.Fatalf("Sec1Decode(%q): %v", enc, err)
	}
	return p
}

func fixtureScalar(t *testing.T, enc string) curve.Scalar {
	t.Helper()
	b, err := hex.DecodeString(enc)
	if err != nil {
		t.Fatalf("decoding scalar fixture %q: %v", enc, err)
	}
	s, err := curve.ScalarFromBytes(b)
	if err != nil {
		t.Fatalf("ScalarFromBytes(%q): %v", enc, err)
	}
	return s
}

func sampleBatch(t *testing.T, n int) []curve.Point {
	t.Helper()
	m := make([]curve.Point, n)
	for i := 0; i < n; i++ {
		seed := make([]byte, 32)
		seed[0] = byte(i + 1)
		p, err := curve.HashToCurve(seed)
		if err != nil {
			t.Fatalf("HashToCurve: %v", err)
		}
		m[i] = p
	}
	return m
}

func TestVerifyAcceptsValidProof(t *testing.T) {
	iss := testissuer.New()
	m := sampleBatch(t, 4)
	z := iss.Sign(m)
	proof := iss.Prove(m, z)

	pair := iss.Commitment()
	if err := dleq.Verify(proof, pair.G, pair.H, m, z); err != nil {
		t.Fatalf("Verify rejected a genuine proof: %v", err)
	}
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	iss := testissuer.New()
	other := testissuer.New()

	m := sampleBatch(t, 3)
	z := iss.Sign(m)
	proof := iss.Prove(m, z)

	pair := other.Commitment()
	if err := dleq.Verify(proof, pair.G, pair.H, m, z); err == nil {
		t.Fatal("Verify accepted a proof against the wrong commitment")
	}
}

func TestVerifyRejectsTamperedResponse(t *testing.T) {
	iss := testissuer.New()
	m := sampleBatch(t, 3)
	z := iss.Sign(m)
	proof := iss.Prove(m, z)

	tampered := make([]curve.Point, len(z))
	copy(tampered, z)
	tampered[1] = tampered[1].Add(curve.Generator())

	pair := iss.Commitment()
	if err := dleq.Verify(proof, pair.G, pair.H, m, tampered); err == nil {
		t.Fatal("Verify accepted a proof against a tampered signed point")
	}
}

func TestVerifyIsSensitiveToOrder(t *testing.T) {
	iss := testissuer.New()
	m := sampleBatch(t, 3)
	z := iss.Sign(m)
	proof := iss.Prove(m, z)

	reordered := []curve.Point{m[1], m[0], m[2]}
	reorderedZ := []curve.Point{z[1], z[0], z[2]}

	pair := iss.Commitment()
	if err := dleq.Verify(proof, pair.G, pair.H, reordered, reorderedZ); err == nil {
		t.Fatal("Verify accepted a proof after permuting the batch order")
	}
}

func TestVerifyRejectsEmptyBatch(t *testing.T) {
	iss := testissuer.New()
	pair := iss.Commitment()
	proof := iss.Prove(nil, nil)

	if err := dleq.Verify(proof, pair.G, pair.H, nil, nil); err == nil {
		t.Fatal("Verify accepted an empty batch")
	}
}

func TestVerifyRejectsLengthMismatch(t *testing.T) {
	iss := testissuer.New()
	m := sampleBatch(t, 2)
	z := iss.Sign(m)
	proof := iss.Prove(m, z)

	pair := iss.Commitment()
	if err := dleq.Verify(proof, pair.G, pair.H, m, z[:1]); err == nil {
		t.Fatal("Verify accepted mismatched |M| and |Z|")
	}
}

// TestVerifyAcceptsRecordedSingleTokenProof and
// TestVerifyAcceptsRecordedTenTokenBatchProof pin dleq.Verify against
// recorded proofs computed independently offline for a fixed issuer
// secret and fixed prover nonce, rather than against a proof this same
// package's own PerIndexChallenges/getShakeScalar just produced. Every
// other test in this file runs both prover and verifier through
// internal/testissuer, whose prover calls PerIndexChallenges itself, so a
// bug in that derivation would be shared by both sides and pass silently;
// only a proof whose bytes were pinned from an independent computation
// catches a bit-exactness divergence from the issuer this client must
// interoperate with.

func TestVerifyAcceptsRecordedSingleTokenProof(t *testing.T) {
	g := curve.Generator()
	h := fixturePoint(t, "0478ab38be57c0477469433e381ee9e8a87cf3302d9803dcce966d26409a022507f44456c8a9ae9fb232b46f946b9822dfb6c7fff71b9371199dc73ddd9e6783ca")
	m := []curve.Point{
		fixturePoint(t, "04f1bcf383968245affa79b13ca33d9460eb7ecac386eefdb5f194a3271f2b5e5eb4cb122fe5537c27404bb5e44332a205abed36f9efe652ed0561ec62e8b16f24"),
	}
	z := []curve.Point{
		fixturePoint(t, "0400fcd8fa60e9f7786253dacd41b6196ede34def0b9bf1fa00bfd6e48872f0fae390d02d40e214fbcb779d6ce59b9ae8adbf56df0cf14a83c74d39028ccb99d0b"),
	}
	proof := dleq.Proof{
		C: fixtureScalar(t, "793b956978f8d5eed4ee6240bc114fb448bf32294cd617f8c72dd49ad5f6ca1b"),
		R: fixtureScalar(t, "f99344ad49c4f491628b3b2ebcdd405929e29ca37e98d6d959cd2083ad271578"),
	}

	if err := dleq.Verify(proof, g, h, m, z); err != nil {
		t.Fatalf("Verify rejected the recorded single-token proof: %v", err)
	}

	tamperedC := fixtureScalar(t, "793b956978f8d5eed4ee6240bc114fb448bf32294cd617f8c72dd49ad5f6ca1b")
	tamperedBytes := tamperedC.Bytes()
	tamperedBytes[0] ^= 0x01
	tampered, err := curve.ScalarFromBytes(tamperedBytes)
	if err != nil {
		t.Fatalf("ScalarFromBytes(tampered C): %v", err)
	}
	tamperedProof := dleq.Proof{C: tampered, R: proof.R}
	if err := dleq.Verify(tamperedProof, g, h, m, z); err == nil {
		t.Fatal("Verify accepted a proof with a single bit of C flipped")
	}
}

func TestVerifyAcceptsRecordedTenTokenBatchProof(t *testing.T) {
	g := curve.Generator()
	h := fixturePoint(t, "0478ab38be57c0477469433e381ee9e8a87cf3302d9803dcce966d26409a022507f44456c8a9ae9fb232b46f946b9822dfb6c7fff71b9371199dc73ddd9e6783ca")

	mEnc := []string{
		"04f1bcf383968245affa79b13ca33d9460eb7ecac386eefdb5f194a3271f2b5e5eb4cb122fe5537c27404bb5e44332a205abed36f9efe652ed0561ec62e8b16f24",
		"04fe8ae111b9d1d2c871bd21fa11d0fcdfea4bcbcc3de6e8ecc58b671ca2da37df16ec8d036f8896f22942236502196970d4b1437c8c116013e4abad46a26fa0fc",
		"041042dfeae6be8782b51cea615ee401ec5219cc53a85bd13fdbd0bfd1f059efbcf33b1f0931947e2bec7ab0c2c1eb6d6e38a0c31af56c7d95edbd170e3b48b1b4",
		"041a924324b8b9990982a74a6188bf27dc8b2cc1a3518e70ab04e3e1eed52e461d17ece8e3c1b1a060df4fea56c660c9be1c76c1b968803cd48ae69e46589634ec",
		"04a41777a9d1021ba4f61adde86a458734dd0c920dae3e7830de6dbab6441e9ca3593b9b021e115af087f36a752c5b7b6f587e2aae62c6f79aa6d7712c13da307e",
		"04fc10e721e6b844199ac8d8b893d5feb248d5e5ef8632b245a1abcc476fd63975972e5b496ea0264d4efa16b662dacc21cdebb934ae320d93cce2c537f71051ce",
		"04cea45c97bab8cdd843d77d3396b30d106b7835a2b3ed7b52352466daa309c9b6820481fb89bac1a80dd4cecce068b0de6e731f244c62f242881c8cbef0d6e7e4",
		"045b37e16e257ad9cbd19f11ad5d0ac1a38771bdef051d88e7543bd242a16b50d4317bdd9086928ffa6fd835f9837f6f1186fe434714973ce24c472f0ae4b62428",
		"04e7bc33ee20cd10c7702247b5a4d160781b476b948f80e8d70b15460d8e9af147feeb690832a24bfb75a97553f42d2d55679a056fe24d36207dddb4ff2f971f0e",
		"046c3861b55bdca615421ab020637a8ddec34fe0a1d3aeb71977ecac140247ae0e362823bbc98a587abf33e739a3813ac1bc07774e970a2f1e4ad8c7788545ad40",
	}
	zEnc := []string{
		"0400fcd8fa60e9f7786253dacd41b6196ede34def0b9bf1fa00bfd6e48872f0fae390d02d40e214fbcb779d6ce59b9ae8adbf56df0cf14a83c74d39028ccb99d0b",
		"040c493f5b3de82060a51854eba8b946876c050eccd408967b44397e7b5a452f09170c3f41657b927018ec11cf7df0ff208647533df87c17744654ed46e2ba0018",
		"044107925a2aad737d6d610fa583a827ec2b5746bd24fa508c2284194e4a80052fab6ca407c898c870fb73932e0ff0c1b3103706b4f275baec8a51f3fb6c735b51",
		"0442e9302cf6a2609af10064800367949e71bcb345b6b99a758bfdea08a6ffaf8a0d44892cfbb16bb010cc0291446a21585413a50752c3289b20b59538dc169c68",
		"04c1b941b1daac0bb11beb6fed09e11ae463d51bf0b22a2f6460fba1cc80e17e2c8ab9737652ede1ac335610925d18c6bdde253dee30f476312f332026c080bdca",
		"049aca2c2836e29d79066367d7b47445561a34790602862ee6eca7807b1751dc6046e7f2cb6cadcc9e80741cef3683beb3546e8244bfa43a181463a048851437f6",
		"048cc7b96a60cfc773ecd088c5751bb422981adc243d31c91e4b0211225882c725497cef1d1922c839053c5b812265c0a5a1166ff36569515a2159e04dcd0a27be",
		"048ba0d8d8ea01e8fae6380e84da03cb322dc8056734fe4fd9168b2acbca3d13ab522c99e56a808d42baed92d939e5080f113017cbc7c7dd3a510e1b8d1e60acc2",
		"04b44182ef14bc7a6db0f8bb07f8aa18a53da88625b9def3878919d5ba6a4678b1a7840a523f7610b81c585c4c03afcc2db3ed99a4f35f87f6985f0609ab261452",
		"04cd51dae533ffe27f336e21dd8a60729a6e34f81b41583d350c5ec18befd4fbc6d465d9e2252fb9939624481dd462f0bdbc0ecb153f0b25dbb68f40885f22f686",
	}

	m := make([]curve.Point, len(mEnc))
	z := make([]curve.Point, len(zEnc))
	for i := range mEnc {
		m[i] = fixturePoint(t, mEnc[i])
		z[i] = fixturePoint(t, zEnc[i])
	}

	proof := dleq.Proof{
		C: fixtureScalar(t, "9d9fb34ddd98e4fcbaa484297533a75bebbf966661afb9a730e59d4c2b979ea0"),
		R: fixtureScalar(t, "40af1cfacb6fc9ad6f826693dfa0af042063e6b2ddc385b9b13077514541e107"),
	}

	if err := dleq.Verify(proof, g, h, m, z); err != nil {
		t.Fatalf("Verify rejected the recorded ten-token batch proof: %v", err)
	}

	swapped := make([]curve.Point, len(z))
	copy(swapped, z)
	swapped[3], swapped[4] = swapped[4], swapped[3]
	if err := dleq.Verify(proof, g, h, m, swapped); err == nil {
		t.Fatal("Verify accepted a proof after swapping Z[3] and Z[4]")
	}
}
