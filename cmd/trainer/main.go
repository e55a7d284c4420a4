package main

import (
	"context"
	"encoding/json"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/joho/godotenv"
	"gonum.org/v1/gonum/stat"

	"github.com/bhargav3138/NYC-AirBnb-Prediction/internal/features"
	"github.com/bhargav3138/NYC-AirBnb-Prediction/internal/model"
	"github.com/bhargav3138/NYC-AirBnb-Prediction/internal/storage"
)

const (
	numSamples = 4000
	seed       = 42
	topN       = 10
)

// listing is one synthetic training row: raw attributes plus targets.
type listing struct {
	raw        features.RawListingAttributes
	price      float64
	highDemand float64
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: No .env file found, using environment variables")
	}

	modelDir := os.Getenv("MODEL_DIR")
	if modelDir == "" {
		modelDir = "ml_models/models"
	}
	if err := os.MkdirAll(modelDir, 0755); err != nil {
		log.Fatal("Failed to create model dir:", err)
	}

	log.Println("🧠 Training pipeline starting...")

	// ───────────────────────── DATA ─────────────────────────
	rnd := rand.New(rand.NewSource(seed))
	listings := generateListings(rnd, numSamples)
	log.Printf("Generated %d samples", len(listings))

	cols := features.Columns()
	X := make([][]float64, len(listings))
	yPrice := make([]float64, len(listings))
	yDemand := make([]float64, len(listings))

	for i, l := range listings {
		fs := features.Engineer(l.raw)
		vec, err := features.Align(fs, cols)
		if err != nil {
			log.Fatal("Feature alignment failed:", err)
		}
		X[i] = vec
		yPrice[i] = l.price
		yDemand[i] = l.highDemand
	}

	// 80/20 holdout split.
	perm := rnd.Perm(len(X))
	cut := len(X) * 8 / 10
	trainIdx, testIdx := perm[:cut], perm[cut:]

	XTrain, XTest := take(X, trainIdx), take(X, testIdx)
	priceTrain, priceTest := takeF(yPrice, trainIdx), takeF(yPrice, testIdx)
	demandTrain, demandTest := takeF(yDemand, trainIdx), takeF(yDemand, testIdx)

	log.Printf("Train size: %d, Test size: %d", len(XTrain), len(XTest))

	// ───────────────────────── PRICE MODEL ─────────────────────────
	log.Println("Training random forest price model...")
	priceModel, priceImportance := model.TrainForestRegressor(XTrain, priceTrain, cols, model.ForestConfig{
		NumTrees:       200,
		MaxDepth:       25,
		MinSamplesLeaf: 2,
		Seed:           seed,
	})

	priceMetrics := regressionMetrics(priceModel, XTrain, priceTrain, XTest, priceTest)
	log.Printf("Price model - Train R²: %.4f, Test R²: %.4f", priceMetrics["train_r2"], priceMetrics["test_r2"])
	log.Printf("Price model - Train RMSE: $%.2f, Test RMSE: $%.2f", priceMetrics["train_rmse"], priceMetrics["test_rmse"])

	// ───────────────────────── DEMAND MODEL ─────────────────────────
	log.Println("Training gradient-boosted demand model...")
	demandModel, demandImportance := model.TrainBoostedClassifier(XTrain, demandTrain, cols, model.BoostConfig{
		Rounds:         200,
		MaxDepth:       5,
		MinSamplesLeaf: 5,
		LearningRate:   0.1,
		Seed:           seed,
	})

	demandMetrics := classificationMetrics(demandModel, XTrain, demandTrain, XTest, demandTest)
	log.Printf("Demand model - Train Acc: %.4f, Test Acc: %.4f", demandMetrics["train_accuracy"], demandMetrics["test_accuracy"])
	log.Printf("Demand model - Train F1: %.4f, Test F1: %.4f", demandMetrics["train_f1"], demandMetrics["test_f1"])

	// ───────────────────────── ARTIFACTS ─────────────────────────
	if err := priceModel.Save(filepath.Join(modelDir, model.PriceModelFile)); err != nil {
		log.Fatal("Failed to save price model:", err)
	}
	if err := demandModel.Save(filepath.Join(modelDir, model.DemandModelFile)); err != nil {
		log.Fatal("Failed to save demand model:", err)
	}
	if err := writeJSON(filepath.Join(modelDir, model.FeatureColumnsFile), cols); err != nil {
		log.Fatal("Failed to save feature columns:", err)
	}

	trainedAt := time.Now().UTC().Format(time.RFC3339)
	metadata := model.ModelMetadata{
		PriceModel: &model.ModelInfo{
			Version:           "1.0",
			ModelType:         priceModel.ModelType,
			TrainedAt:         trainedAt,
			Metrics:           priceMetrics,
			FeatureImportance: topImportance(priceImportance, topN),
		},
		DemandModel: &model.ModelInfo{
			Version:           "1.0",
			ModelType:         demandModel.ModelType,
			TrainedAt:         trainedAt,
			Metrics:           demandMetrics,
			FeatureImportance: topImportance(demandImportance, topN),
		},
		FeatureColumns: cols,
	}
	if err := writeJSON(filepath.Join(modelDir, model.MetadataFile), metadata); err != nil {
		log.Fatal("Failed to save metadata:", err)
	}

	log.Printf("✅ Artifacts written to %s", modelDir)

	// ───────────────────────── PUBLISH ─────────────────────────
	if storage.Configured() {
		ctx := context.Background()
		r2Client, err := storage.NewR2Client(ctx)
		if err != nil {
			log.Printf("⚠️  Artifact store init failed: %v", err)
		} else {
			err := r2Client.PublishArtifacts(ctx, modelDir, []string{
				model.PriceModelFile,
				model.DemandModelFile,
				model.FeatureColumnsFile,
				model.MetadataFile,
			})
			if err != nil {
				log.Printf("⚠️  Artifact publish failed: %v", err)
			}
		}
	}

	log.Println("✅ Training complete")
}

// --------------------------------------------------
// Synthetic NYC dataset
// --------------------------------------------------
func generateListings(rnd *rand.Rand, n int) []listing {
	roomTypes := features.RoomTypes
	roomWeights := []float64{0.50, 0.45, 0.05}

	groups := []string{"Manhattan", "Brooklyn", "Queens", "Bronx", "Staten Island"}
	groupWeights := []float64{0.40, 0.32, 0.18, 0.07, 0.03}

	neighbourhoods := features.KnownNeighbourhoods()
	sort.Strings(neighbourhoods)

	minNightsChoices := []float64{1, 2, 3, 7, 30, 90}
	minNightsWeights := []float64{0.40, 0.20, 0.15, 0.15, 0.07, 0.03}

	// Host listing counts decay exponentially: most hosts run one or two
	// listings, a long tail runs dozens.
	hostChoices := make([]float64, 49)
	hostWeights := make([]float64, 49)
	hostTotal := 0.0
	for k := range hostChoices {
		hostChoices[k] = float64(k + 1)
		hostWeights[k] = math.Exp(-float64(k+1) / 10)
		hostTotal += hostWeights[k]
	}
	for k := range hostWeights {
		hostWeights[k] /= hostTotal
	}

	listings := make([]listing, n)
	for i := 0; i < n; i++ {
		lat := 40.58 + rnd.Float64()*(40.92-40.58)
		lon := -74.29 + rnd.Float64()*(-73.70-(-74.29))
		roomType := weightedChoice(rnd, roomTypes, roomWeights)
		group := weightedChoice(rnd, groups, groupWeights)
		neighbourhood := neighbourhoods[rnd.Intn(len(neighbourhoods))]
		minNights := weightedChoiceF(rnd, minNightsChoices, minNightsWeights)
		reviews := math.Floor(rnd.ExpFloat64() * 15)
		reviewsPerMonth := rnd.ExpFloat64() * 1.5
		hostListings := weightedChoiceF(rnd, hostChoices, hostWeights)
		availability := rnd.Float64() * 365

		price := 100.0
		switch roomType {
		case "Entire home/apt":
			price += 80
		case "Private room":
			price += 30
		}
		switch group {
		case "Manhattan":
			price += 60
		case "Brooklyn":
			price += 30
		}
		price += reviews * 0.5
		price += reviewsPerMonth * 10
		price -= availability * 0.05
		price += rnd.NormFloat64() * 20
		if price < 10 {
			price = 10
		}

		highDemand := 0.0
		if (availability < 100 && reviews > 10) || (reviewsPerMonth > 2 && group == "Manhattan") {
			highDemand = 1
		}

		listings[i] = listing{
			raw: features.RawListingAttributes{
				Latitude:                    &lat,
				Longitude:                   &lon,
				RoomType:                    &roomType,
				NeighbourhoodGroup:          &group,
				Neighbourhood:               &neighbourhood,
				MinimumNights:               &minNights,
				NumberOfReviews:             &reviews,
				ReviewsPerMonth:             &reviewsPerMonth,
				CalculatedHostListingsCount: &hostListings,
				Availability365:             &availability,
			},
			price:      price,
			highDemand: highDemand,
		}
	}

	return listings
}

// --------------------------------------------------
// Metrics
// --------------------------------------------------
func regressionMetrics(m *model.Ensemble, XTrain [][]float64, yTrain []float64, XTest [][]float64, yTest []float64) map[string]float64 {
	trainPred := predictAll(m, XTrain)
	testPred := predictAll(m, XTest)

	return map[string]float64{
		"train_r2":   stat.RSquaredFrom(trainPred, yTrain, nil),
		"test_r2":    stat.RSquaredFrom(testPred, yTest, nil),
		"train_rmse": rmse(trainPred, yTrain),
		"test_rmse":  rmse(testPred, yTest),
		"n_features": float64(len(m.FeatureNames)),
	}
}

func classificationMetrics(m *model.Ensemble, XTrain [][]float64, yTrain []float64, XTest [][]float64, yTest []float64) map[string]float64 {
	trainPred := predictAll(m, XTrain)
	testPred := predictAll(m, XTest)

	trainAcc, trainF1 := accuracyF1(trainPred, yTrain)
	testAcc, testF1 := accuracyF1(testPred, yTest)

	return map[string]float64{
		"train_accuracy": trainAcc,
		"test_accuracy":  testAcc,
		"train_f1":       trainF1,
		"test_f1":        testF1,
		"positive_rate":  stat.Mean(yTrain, nil),
		"n_features":     float64(len(m.FeatureNames)),
	}
}

func predictAll(m *model.Ensemble, X [][]float64) []float64 {
	out := make([]float64, len(X))
	for i, x := range X {
		v, err := m.Predict(x)
		if err != nil {
			log.Fatal("Prediction failed during evaluation:", err)
		}
		out[i] = v
	}
	return out
}

func rmse(pred, actual []float64) float64 {
	sum := 0.0
	for i := range pred {
		d := pred[i] - actual[i]
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(pred)))
}

func accuracyF1(scores, actual []float64) (accuracy, f1 float64) {
	var tp, fp, fn, correct float64
	for i := range scores {
		pred := 0.0
		if scores[i] > 0.5 {
			pred = 1
		}
		if pred == actual[i] {
			correct++
		}
		switch {
		case pred == 1 && actual[i] == 1:
			tp++
		case pred == 1 && actual[i] == 0:
			fp++
		case pred == 0 && actual[i] == 1:
			fn++
		}
	}

	accuracy = correct / float64(len(scores))
	if 2*tp+fp+fn > 0 {
		f1 = 2 * tp / (2*tp + fp + fn)
	}
	return accuracy, f1
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------
func weightedChoice(rnd *rand.Rand, choices []string, weights []float64) string {
	r := rnd.Float64()
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r < acc {
			return choices[i]
		}
	}
	return choices[len(choices)-1]
}

func weightedChoiceF(rnd *rand.Rand, choices []float64, weights []float64) float64 {
	r := rnd.Float64()
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r < acc {
			return choices[i]
		}
	}
	return choices[len(choices)-1]
}

func take(X [][]float64, idx []int) [][]float64 {
	out := make([][]float64, len(idx))
	for i, j := range idx {
		out[i] = X[j]
	}
	return out
}

func takeF(y []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, j := range idx {
		out[i] = y[j]
	}
	return out
}

func topImportance(importance map[string]float64, n int) map[string]float64 {
	type kv struct {
		name  string
		value float64
	}
	sorted := make([]kv, 0, len(importance))
	for name, value := range importance {
		sorted = append(sorted, kv{name, value})
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].value > sorted[j].value })

	if len(sorted) > n {
		sorted = sorted[:n]
	}

	out := make(map[string]float64, len(sorted))
	for _, e := range sorted {
		out[e.name] = e.value
	}
	return out
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
